package presale

import "fmt"

// Stage is one step of the presale wizard.
type Stage int

const (
	StageParameters Stage = iota + 1
	StageScheduleWhitelist
	StageInformation
	StageReviewSubmit
)

// Stages lists every stage in order.
var Stages = []Stage{StageParameters, StageScheduleWhitelist, StageInformation, StageReviewSubmit}

func (s Stage) String() string {
	switch s {
	case StageParameters:
		return "Sale Parameters"
	case StageScheduleWhitelist:
		return "Schedule & Whitelist"
	case StageInformation:
		return "Sale Information"
	case StageReviewSubmit:
		return "Review & Submit"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Action is an input to the wizard's transition function.
type Action int

const (
	ActionContinue Action = iota
	ActionBack
	ActionLaunch
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionBack:
		return "back"
	case ActionLaunch:
		return "launch"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Transition is the result of an accepted action.
type Transition struct {
	Action Action
	From   Stage
	To     Stage
}

// TransitionError reports an action that is not valid in the current stage.
type TransitionError struct {
	From   Stage
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s", e.Action, e.From)
}

// ValidationError is a field- or stage-scoped validation failure. Message
// is the text shown to the user.
type ValidationError struct {
	Stage   Stage
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
