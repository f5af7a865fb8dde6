package screen

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/chain/chaintest"
	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/export"
	"github.com/rovshanmuradov/launchpad/internal/logger"
	"github.com/rovshanmuradov/launchpad/internal/presale"
	"github.com/rovshanmuradov/launchpad/internal/purchase"
	"github.com/rovshanmuradov/launchpad/internal/token"
	"github.com/rovshanmuradov/launchpad/internal/transfer"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
	"github.com/rovshanmuradov/launchpad/internal/wallet/wallettest"
)

const (
	seller    = "0x00000000000000000000000000000000000000B2"
	buyer     = "0x1111111111111111111111111111111111111111"
	member    = "0x2222222222222222222222222222222222222222"
	tokenAddr = "0x00000000000000000000000000000000000000A1"
)

var (
	saleNow      = time.Date(2025, 3, 8, 12, 0, 0, 0, presale.IST)
	wizardNow    = time.Date(2025, 3, 1, 10, 0, 0, 0, presale.IST)
	batchAddress = common.HexToAddress("0x5555555555555555555555555555555555555555")
)

type testWallet struct {
	wallettest.Static
}

func (w *testWallet) Disconnect(context.Context) {
	w.Account = ""
}

func (w *testWallet) ActiveNetwork() wallet.Network {
	n, _ := wallet.NetworkByChainID(wallet.DefaultNetworks, w.Chain)
	return n
}

type fixture struct {
	svc    *ui.Services
	store  *docstore.Memory
	sub    *chaintest.Submitter
	wallet *testWallet
}

func newFixture(t *testing.T, account string) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := docstore.NewMemory()
	sub := &chaintest.Submitter{}
	w := &testWallet{Static: wallettest.Static{Account: account, Chain: wallet.DefaultNetworks[0].ChainID}}

	tokens := token.NewService(store, w, sub, nil, nil, log)
	sales := discovery.NewService(store, presale.IST, log).
		WithClock(func() time.Time { return saleNow })

	logs, err := logger.NewLogBuffer(50, t.TempDir()+"/spill.log", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logs.Close() })

	batch := chain.MustContract(batchAddress, chain.BatchTransferABI)

	return &fixture{
		svc: &ui.Services{
			Ctx:      context.Background(),
			Logger:   log,
			Wallet:   w,
			Networks: wallet.DefaultNetworks,
			Presale: presale.NewService(store, tokens, nil, presale.IST, log).
				WithClock(func() time.Time { return wizardNow }),
			Discovery:      sales,
			Purchase:       purchase.NewService(sales, store, sub, nil, log),
			Tokens:         tokens,
			Transfer:       transfer.NewService(sub, batch, nil, log),
			Exporter:       export.NewHistoryExporter(t.TempDir(), log),
			Logs:           logs,
			CommandTimeout: 5 * time.Second,
		},
		store:  store,
		sub:    sub,
		wallet: w,
	}
}

func (f *fixture) seedSales(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Write(ctx, docstore.LaunchesPath(seller)+"/sale1", domain.Launch{
		SaleName:        "Public Sale",
		TokenName:       "Launch Token",
		TokenSymbol:     "LT",
		TokenAddress:    tokenAddr,
		PaymentCurrency: "Eth Sepolia",
		SalePrice:       "0.01",
		MinBuy:          "1",
		MaxBuy:          "100",
		Softcap:         "5",
		Hardcap:         "10",
		PublicStartDate: "01/03/2025 10:00 AM",
		PublicEndDate:   "30/03/2025 10:00 AM",
	}))
	require.NoError(t, f.store.Write(ctx, docstore.LaunchesPath(seller)+"/private", domain.Launch{
		SaleName:        "Private Sale",
		HasWhitelist:    true,
		Whitelist:       &domain.Whitelist{SalePrice: "0.005", Addresses: []string{member}},
		PublicStartDate: "01/03/2025 10:00 AM",
		PublicEndDate:   "30/03/2025 10:00 AM",
	}))
	require.NoError(t, f.store.Write(ctx, docstore.LaunchesPath(seller)+"/ended", domain.Launch{
		SaleName:        "Ended Sale",
		SalePrice:       "0.02",
		PublicStartDate: "01/01/2025 10:00 AM",
		PublicEndDate:   "01/02/2025 10:00 AM",
	}))
}

// collect runs cmd and returns the messages it produced, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// settle runs cmd and feeds every result except spinner ticks back into s.
func settle(s router.Screen, cmd tea.Cmd) []tea.Msg {
	msgs := collect(cmd)
	for _, m := range msgs {
		if _, ok := m.(spinner.TickMsg); ok {
			continue
		}
		s.Update(m)
	}
	return msgs
}

func press(s router.Screen, k tea.KeyType) tea.Cmd {
	_, cmd := s.Update(tea.KeyMsg{Type: k})
	return cmd
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func fill(s *PresaleScreen, values map[presale.Field]string) {
	form := s.current()
	for field, v := range values {
		form.SetFieldValue(string(field), v)
	}
	s.sync()
}

func seedToken(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.store.Write(context.Background(), docstore.UserTokenPath(seller, tokenAddr), domain.TokenRecord{
		TokenName:    "Launch Token",
		TokenSymbol:  "LT",
		TotalSupply:  "1000000",
		TokenAddress: tokenAddr,
		Network:      "Ethereum Sepolia",
	}))
}

func TestPresaleScreenContinueNeedsStageOne(t *testing.T) {
	f := newFixture(t, seller)
	s := NewPresaleScreen(f.svc)

	press(s, tea.KeyCtrlS)
	assert.Equal(t, presale.StageParameters, s.Wizard().Stage())
	assert.True(t, s.notice.isErr)
	assert.Equal(t, "Please fill all fields in Stage 1", s.notice.text)
}

func TestPresaleScreenLoadsTokens(t *testing.T) {
	f := newFixture(t, seller)
	seedToken(t, f)
	s := NewPresaleScreen(f.svc)

	msgs := settle(s, s.Init())
	loaded, ok := find[tokensLoadedMsg](msgs)
	require.True(t, ok)
	require.Len(t, loaded.tokens, 1)

	form := s.Wizard().Form()
	assert.Equal(t, tokenAddr, form.TokenAddress)
	assert.Equal(t, wallet.DefaultPaymentCurrency, form.PaymentCurrency)
	assert.False(t, s.busy.active)
}

func TestPresaleScreenWithoutTokens(t *testing.T) {
	f := newFixture(t, seller)
	s := NewPresaleScreen(f.svc)

	settle(s, s.Init())
	assert.True(t, s.notice.isErr)
	assert.Contains(t, s.notice.text, "no tokens found")
}

func fillStageOne(s *PresaleScreen) {
	fill(s, map[presale.Field]string{
		presale.FieldSalePrice:     "0.01",
		presale.FieldLPLaunchPrice: "0.02",
		presale.FieldMinBuy:        "1",
		presale.FieldMaxBuy:        "10",
		presale.FieldSoftcap:       "5",
		presale.FieldHardcap:       "10",
		presale.FieldPreSaleLimit:  "100",
	})
}

func fillStageTwo(s *PresaleScreen) {
	fill(s, map[presale.Field]string{
		presale.FieldStartDate:     "2025-04-01",
		presale.FieldStartTime:     "10:00",
		presale.FieldStartMeridiem: "AM",
		presale.FieldEndDate:       "2025-04-10",
		presale.FieldEndTime:       "10:00",
		presale.FieldEndMeridiem:   "PM",
	})
}

func fillStageThree(s *PresaleScreen) {
	fill(s, map[presale.Field]string{
		presale.FieldSaleName:        "Launch One",
		presale.FieldSaleDescription: "First sale",
		presale.FieldTwitter:         "https://x.com/launch",
		presale.FieldTelegram:        "https://t.me/launch",
	})
}

func TestPresaleScreenWhitelistSlots(t *testing.T) {
	f := newFixture(t, seller)
	seedToken(t, f)
	s := NewPresaleScreen(f.svc)
	settle(s, s.Init())

	fillStageOne(s)
	press(s, tea.KeyCtrlS)
	require.Equal(t, presale.StageScheduleWhitelist, s.Wizard().Stage())

	s.current().Focus(whitelistToggle)
	s.Update(space())
	require.True(t, s.Wizard().Form().HasWhitelist)
	assert.Len(t, s.Wizard().Form().WhitelistAddresses, 1)
	assert.Equal(t, "", s.current().GetValue(slotPrefix+"0"))

	press(s, tea.KeyCtrlA)
	assert.Len(t, s.Wizard().Form().WhitelistAddresses, 2)
	assert.Equal(t, slotPrefix+"1", s.current().Focused())

	s.current().SetFieldValue(slotPrefix+"0", "0xnothex")
	s.sync()
	assert.Equal(t, []bool{true, false}, s.Wizard().SlotErrors())
	assert.Equal(t, "Invalid address", s.current().GetError(slotPrefix+"0"))
	assert.Empty(t, s.current().GetError(slotPrefix+"1"))

	s.current().SetFieldValue(slotPrefix+"0", member)
	s.sync()
	assert.Equal(t, []bool{false, false}, s.Wizard().SlotErrors())

	// clearing a slot flags it, and the untouched neighbour stays clean
	s.current().SetFieldValue(slotPrefix+"0", "")
	s.sync()
	assert.Equal(t, []bool{true, false}, s.Wizard().SlotErrors())
	assert.Equal(t, "Invalid address", s.current().GetError(slotPrefix+"0"))
	assert.Empty(t, s.current().GetError(slotPrefix+"1"))

	s.current().SetFieldValue(slotPrefix+"0", member)
	s.sync()

	press(s, tea.KeyCtrlD)
	require.Len(t, s.Wizard().Form().WhitelistAddresses, 1)
	assert.Equal(t, member, s.Wizard().Form().WhitelistAddresses[0])

	press(s, tea.KeyCtrlD)
	assert.Len(t, s.Wizard().Form().WhitelistAddresses, 1)
	assert.True(t, s.notice.isErr)
	assert.Equal(t, presale.ErrLastSlot.Error(), s.notice.text)

	press(s, tea.KeyCtrlB)
	assert.Equal(t, presale.StageParameters, s.Wizard().Stage())
	assert.Equal(t, "0.01", s.current().GetValue(string(presale.FieldSalePrice)))
}

func TestPresaleScreenLaunch(t *testing.T) {
	f := newFixture(t, seller)
	seedToken(t, f)
	s := NewPresaleScreen(f.svc)
	settle(s, s.Init())

	fillStageOne(s)
	press(s, tea.KeyCtrlS)
	fillStageTwo(s)
	press(s, tea.KeyCtrlS)
	fillStageThree(s)
	press(s, tea.KeyCtrlS)
	require.Equal(t, presale.StageReviewSubmit, s.Wizard().Stage())
	assert.Contains(t, s.View(), "Launch One")

	msgs := settle(s, press(s, tea.KeyCtrlS))
	launched, ok := find[presaleLaunchedMsg](msgs)
	require.True(t, ok, "got %v", msgs)
	require.NotEmpty(t, launched.id)

	assert.Equal(t, presale.StageParameters, s.Wizard().Stage())
	assert.Empty(t, s.Wizard().Form().SaleName)
	assert.False(t, s.notice.isErr)
	assert.Contains(t, s.notice.text, launched.id)

	var stored domain.Launch
	ok, err := docstore.ReadInto(context.Background(), f.store, docstore.LaunchesPath(seller)+"/"+launched.id, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Launch One", stored.SaleName)
	assert.Equal(t, "01/04/2025 10:00 AM", stored.PublicStartDate)
	assert.Equal(t, "10/04/2025 10:00 PM", stored.PublicEndDate)
}

func TestPresaleScreenLaunchUsesSnapshot(t *testing.T) {
	f := newFixture(t, seller)
	seedToken(t, f)
	s := NewPresaleScreen(f.svc)
	settle(s, s.Init())

	fillStageOne(s)
	press(s, tea.KeyCtrlS)
	fillStageTwo(s)
	press(s, tea.KeyCtrlS)
	fillStageThree(s)
	press(s, tea.KeyCtrlS)
	require.Equal(t, presale.StageReviewSubmit, s.Wizard().Stage())

	cmd := press(s, tea.KeyCtrlS)

	// the screen keeps handling messages while the launch is pending
	tokens, err := f.svc.Tokens.List(context.Background(), seller)
	require.NoError(t, err)
	s.Update(tokensLoadedMsg{tokens: tokens})
	require.NoError(t, s.Wizard().Set(presale.FieldSaleName, "Edited Later"))

	msgs := settle(s, cmd)
	launched, ok := find[presaleLaunchedMsg](msgs)
	require.True(t, ok, "got %v", msgs)

	var stored domain.Launch
	ok, err = docstore.ReadInto(context.Background(), f.store, docstore.LaunchesPath(seller)+"/"+launched.id, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Launch One", stored.SaleName)
}

func TestPresaleScreenLaunchNeedsWallet(t *testing.T) {
	f := newFixture(t, seller)
	seedToken(t, f)
	s := NewPresaleScreen(f.svc)
	settle(s, s.Init())

	fillStageOne(s)
	press(s, tea.KeyCtrlS)
	fillStageTwo(s)
	press(s, tea.KeyCtrlS)
	fillStageThree(s)
	press(s, tea.KeyCtrlS)

	f.wallet.Account = ""
	msgs := settle(s, press(s, tea.KeyCtrlS))
	_, ok := find[ui.ErrorMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, presale.StageReviewSubmit, s.Wizard().Stage())
	assert.Equal(t, "Wallet not connected", s.notice.text)
}

func TestSalesScreen(t *testing.T) {
	f := newFixture(t, buyer)
	f.seedSales(t)
	s := NewSalesScreen(f.svc)

	settle(s, s.Init())
	require.Len(t, s.Listings(), 1)
	assert.Equal(t, "sale1", s.Listings()[0].ID)
	assert.Equal(t, discovery.StatusActive, s.Listings()[0].Status)

	msgs := collect(press(s, tea.KeyEnter))
	nav, ok := find[ui.RouterMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteSaleDetail, Param: "sale1"}, nav)

	settle(s, press(s, tea.KeyCtrlT))
	require.Len(t, s.Listings(), 2)
	assert.Contains(t, s.View(), "All Sales")
}

func TestSalesScreenIgnoresStaleResult(t *testing.T) {
	f := newFixture(t, buyer)
	f.seedSales(t)
	s := NewSalesScreen(f.svc)

	activeLoad := s.load()
	press(s, tea.KeyCtrlT)

	settle(s, activeLoad)
	assert.Empty(t, s.Listings())
}

func TestSalesScreenShowsWhitelistedSales(t *testing.T) {
	f := newFixture(t, member)
	f.seedSales(t)
	s := NewSalesScreen(f.svc)

	settle(s, s.Init())
	ids := make([]string, 0, len(s.Listings()))
	for _, l := range s.Listings() {
		ids = append(ids, l.ID)
	}
	assert.ElementsMatch(t, []string{"sale1", "private"}, ids)
}

func TestSaleDetailBuy(t *testing.T) {
	f := newFixture(t, buyer)
	f.seedSales(t)
	s := NewSaleDetailScreen(f.svc, "sale1")

	settle(s, s.Init())
	require.NotNil(t, s.listing)
	require.NoError(t, s.buyErr)

	s.form.SetFieldValue(quantityField, "25")
	assert.Contains(t, s.CostPreview(), "Cost: 0.25 Eth Sepolia")

	msgs := settle(s, press(s, tea.KeyCtrlS))
	done, ok := find[purchaseDoneMsg](msgs)
	require.True(t, ok, "got %v", msgs)
	assert.Equal(t, domain.Amount("0.25"), done.record.AmountPaid)
	assert.Contains(t, s.notice.text, "Bought 25 LT")
	assert.Equal(t, "", s.form.GetValue(quantityField))

	calls := f.sub.Submitted()
	require.Len(t, calls, 1)
	assert.Equal(t, "250000000000000000", calls[0].Value.String())

	history, err := f.svc.Purchase.History(context.Background(), seller)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, buyer, history[0].BuyerAddress)
}

func TestHistoryScreenExports(t *testing.T) {
	f := newFixture(t, seller)
	s := NewHistoryScreen(f.svc)

	settle(s, s.Init())
	press(s, tea.KeyCtrlE)
	assert.Equal(t, export.ErrNothingToExport.Error(), s.notice.text)

	require.NoError(t, f.store.Write(context.Background(), docstore.HistoryPath(seller)+"/h1", domain.HistoryRecord{
		BuyerAddress:      buyer,
		TokenSymbol:       "LT",
		TokenAddress:      tokenAddr,
		QuantityPurchased: "25",
		AmountPaid:        "0.25",
		PaymentToken:      "Eth Sepolia",
		SaleID:            "sale1",
		Timestamp:         saleNow.UnixMilli(),
		TransactionHash:   "0xfeed",
	}))
	settle(s, press(s, tea.KeyCtrlR))
	require.Len(t, s.sales, 1)

	msgs := settle(s, press(s, tea.KeyCtrlE))
	done, ok := find[historyExportedMsg](msgs)
	require.True(t, ok, "got %v", msgs)
	assert.Contains(t, s.notice.text, "Exported to")
	_, err := os.Stat(done.path)
	assert.NoError(t, err)
}

func TestSaleDetailRejectsQuantityOutsideLimits(t *testing.T) {
	f := newFixture(t, buyer)
	f.seedSales(t)
	s := NewSaleDetailScreen(f.svc, "sale1")
	settle(s, s.Init())

	s.form.SetFieldValue(quantityField, "500")
	assert.Nil(t, press(s, tea.KeyCtrlS))
	assert.Contains(t, s.form.View(), "Maximum buy is 100")
	assert.Empty(t, f.sub.Submitted())
}

func TestSaleDetailNotWhitelisted(t *testing.T) {
	f := newFixture(t, buyer)
	f.seedSales(t)
	s := NewSaleDetailScreen(f.svc, "private")

	settle(s, s.Init())
	require.ErrorIs(t, s.buyErr, discovery.ErrNotWhitelisted)
	assert.Equal(t, "you are not whitelisted for this sale", s.notice.text)

	s.form.SetFieldValue(quantityField, "1")
	assert.Nil(t, press(s, tea.KeyCtrlS))
	assert.Empty(t, f.sub.Submitted())
}

func fillTransfer(s *TransferScreen, amount string) {
	r := s.Batch().Recipients()[0]
	s.form.SetFieldValue(tokenField, tokenAddr)
	s.form.SetFieldValue(addressPrefix+r.ID, member)
	s.form.SetFieldValue(amountPrefix+r.ID, amount)
	s.sync()
}

func TestTransferScreenNeedsApproval(t *testing.T) {
	f := newFixture(t, seller)
	f.sub.Views = map[string][]interface{}{
		"decimals":  {uint8(18)},
		"allowance": {big.NewInt(0)},
	}
	s := NewTransferScreen(f.svc)
	fillTransfer(s, "2")

	msgs := settle(s, press(s, tea.KeyCtrlS))
	failed, ok := find[ui.ErrorMsg](msgs)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Error, errApprovalRequired)
	assert.Empty(t, f.sub.Submitted())

	msgs = settle(s, press(s, tea.KeyCtrlP))
	inspected, ok := find[tokenInspectedMsg](msgs)
	require.True(t, ok, "got %v", msgs)
	assert.True(t, inspected.approved)

	calls := f.sub.Submitted()
	require.Len(t, calls, 1)
	assert.Equal(t, "approve", calls[0].Method)
}

func TestTransferScreenSendsBatch(t *testing.T) {
	f := newFixture(t, seller)
	allowance, _ := new(big.Int).SetString("100000000000000000000", 10)
	f.sub.Views = map[string][]interface{}{
		"decimals":  {uint8(18)},
		"allowance": {allowance},
	}
	s := NewTransferScreen(f.svc)

	press(s, tea.KeyCtrlA)
	require.Equal(t, 2, s.Batch().Len())
	second := s.Batch().Recipients()[1]
	s.form.SetFieldValue(addressPrefix+second.ID, buyer)
	s.form.SetFieldValue(amountPrefix+second.ID, "3")
	fillTransfer(s, "2")

	msgs := settle(s, press(s, tea.KeyCtrlS))
	_, ok := find[transferSentMsg](msgs)
	require.True(t, ok, "got %v", msgs)

	calls := f.sub.Submitted()
	require.Len(t, calls, 1)
	assert.Equal(t, "batchTransfer", calls[0].Method)
	assert.Len(t, calls[0].Args[1], 2)

	assert.Equal(t, 1, s.Batch().Len())
	assert.Equal(t, tokenAddr, s.form.GetValue(tokenField))
}

func TestTransferScreenRejectsBadToken(t *testing.T) {
	f := newFixture(t, seller)
	s := NewTransferScreen(f.svc)
	s.form.SetFieldValue(tokenField, "nope")

	assert.Nil(t, press(s, tea.KeyCtrlS))
	assert.Contains(t, s.form.View(), transfer.ErrInvalidToken.Error())
}

func TestTransferScreenKeepsLastRecipient(t *testing.T) {
	f := newFixture(t, seller)
	s := NewTransferScreen(f.svc)

	press(s, tea.KeyCtrlD)
	assert.Equal(t, 1, s.Batch().Len())
	assert.Equal(t, transfer.ErrLastRecipient.Error(), s.notice.text)
}

func TestNetworkScreen(t *testing.T) {
	f := newFixture(t, seller)
	s := NewNetworkScreen(f.svc)

	settle(s, s.Init())
	assert.Equal(t, seller, s.account)
	assert.Equal(t, wallet.DefaultNetworks[0].ChainID, s.chainID)

	press(s, tea.KeyDown)
	msgs := settle(s, press(s, tea.KeyEnter))
	switched, ok := find[networkSwitchedMsg](msgs)
	require.True(t, ok, "got %v", msgs)
	assert.Equal(t, "Linea Sepolia", switched.network.Name)
	assert.Equal(t, wallet.DefaultNetworks[1].ChainID, f.wallet.Chain)

	_, cmd := s.Update(switched)
	settle(s, cmd)
	assert.Equal(t, wallet.DefaultNetworks[1].ChainID, s.chainID)

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	settle(s, cmd)
	assert.Equal(t, "", s.account)
	assert.Contains(t, s.View(), "not connected")
}

func TestMainMenuNavigates(t *testing.T) {
	f := newFixture(t, seller)
	m := NewMainMenuScreen(f.svc)
	settle(m, m.Init())

	press(m, tea.KeyDown)
	msgs := collect(press(m, tea.KeyEnter))
	nav, ok := find[ui.RouterMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, ui.RoutePresale, nav.To)

	press(m, tea.KeyUp)
	press(m, tea.KeyUp)
	assert.Equal(t, ui.RouteLogs, m.SelectedRoute())
}

func TestLogsScreenFilters(t *testing.T) {
	f := newFixture(t, seller)
	require.NoError(t, f.svc.Logs.Add("info", "Launch created", nil))
	require.NoError(t, f.svc.Logs.Add("error", "Purchase payment failed", nil))

	s := NewLogsScreen(f.svc)
	s.SetSize(120, 40)
	s.viewer.Refresh()
	view := s.View()
	assert.Contains(t, view, "Launch created")
	assert.Contains(t, view, "Purchase payment failed")

	press(s, tea.KeyF1)
	view = s.View()
	assert.NotContains(t, view, "Launch created")
	assert.Contains(t, view, "Purchase payment failed")
	assert.Contains(t, view, "Showing: Error, Warning")
}
