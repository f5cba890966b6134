package engine

import "fmt"

// ActType categorizes catalog entries.
type ActType uint8

const (
	ActSelf ActType = iota
	ActTarget
	ActBlock
	ActChallenge
	ActLose
)

var actTypeNames = [...]string{"self", "target", "block", "challenge", "lose"}

func (t ActType) String() string {
	if int(t) >= len(actTypeNames) {
		return "unknown"
	}
	return actTypeNames[t]
}

// Action is an immutable catalog entry: its category, the role its claim
// asserts (NoRole if it is not bluffable), and the ordered block responses a
// target may answer with. Entries are shared package-level values; identity
// comparison is the intended lookup.
type Action struct {
	Type   ActType
	Name   string
	Role   Role
	Blocks []*Action
}

func (a *Action) String() string { return a.Name }

// The fixed action catalog.
var (
	LoseAmbassador = &Action{Type: ActLose, Name: "LOSE_AMBASSADOR", Role: Ambassador}
	LoseAssassin   = &Action{Type: ActLose, Name: "LOSE_ASSASSIN", Role: Assassin}
	LoseCaptain    = &Action{Type: ActLose, Name: "LOSE_CAPTAIN", Role: Captain}
	LoseContessa   = &Action{Type: ActLose, Name: "LOSE_CONTESSA", Role: Contessa}
	LoseDuke       = &Action{Type: ActLose, Name: "LOSE_DUKE", Role: Duke}

	ChallengePass = &Action{Type: ActChallenge, Name: "CHALLENGE_PASS", Role: NoRole}
	ChallengeCall = &Action{Type: ActChallenge, Name: "CHALLENGE_CALL", Role: NoRole}

	BlockPass            = &Action{Type: ActBlock, Name: "BLOCK_PASS", Role: NoRole}
	BlockAssassinate     = &Action{Type: ActBlock, Name: "BLOCK_ASSASSINATE", Role: Contessa}
	BlockForeignAid      = &Action{Type: ActBlock, Name: "BLOCK_FOREIGN_AID", Role: Duke}
	BlockStealAmbassador = &Action{Type: ActBlock, Name: "BLOCK_STEAL_AMB", Role: Ambassador}
	BlockStealCaptain    = &Action{Type: ActBlock, Name: "BLOCK_STEAL_CAP", Role: Captain}

	Exchange   = &Action{Type: ActSelf, Name: "EXCHANGE", Role: Ambassador}
	ForeignAid = &Action{Type: ActSelf, Name: "FOREIGN_AID", Role: NoRole,
		Blocks: []*Action{BlockPass, BlockForeignAid}}
	Income = &Action{Type: ActSelf, Name: "INCOME", Role: NoRole}
	Tax    = &Action{Type: ActSelf, Name: "TAX", Role: Duke}

	Assassinate = &Action{Type: ActTarget, Name: "ASSASSINATE", Role: Assassin,
		Blocks: []*Action{BlockPass, BlockAssassinate}}
	Coup  = &Action{Type: ActTarget, Name: "COUP", Role: NoRole}
	Steal = &Action{Type: ActTarget, Name: "STEAL", Role: Captain,
		Blocks: []*Action{BlockPass, BlockStealAmbassador, BlockStealCaptain}}
)

// Catalog lists every action in fixed iteration order. The discrete action
// space and all legal-move enumeration derive their ordering from it.
var Catalog = []*Action{
	LoseAmbassador, LoseAssassin, LoseCaptain, LoseContessa, LoseDuke,
	ChallengePass, ChallengeCall,
	BlockPass, BlockAssassinate, BlockForeignAid, BlockStealAmbassador, BlockStealCaptain,
	Exchange, ForeignAid, Income, Tax,
	Assassinate, Coup, Steal,
}

// StartActions lists the actions a turn may open with.
var StartActions = filterCatalog(func(a *Action) bool {
	return a.Type == ActSelf || a.Type == ActTarget
})

// BlockActions lists every block response, including the pass.
var BlockActions = filterCatalog(func(a *Action) bool { return a.Type == ActBlock })

func filterCatalog(keep func(*Action) bool) []*Action {
	var out []*Action
	for _, a := range Catalog {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

var loseFor = [NumRoles]*Action{LoseAmbassador, LoseAssassin, LoseCaptain, LoseContessa, LoseDuke}

// LoseFor returns the card-loss action for a role.
func LoseFor(r Role) *Action { return loseFor[r] }

var byName = func() map[string]*Action {
	m := make(map[string]*Action, len(Catalog))
	for _, a := range Catalog {
		m[a.Name] = a
	}
	return m
}()

// ByName looks up a catalog action by name, or nil if absent.
func ByName(name string) *Action { return byName[name] }

// Move pairs a catalog action with a target offset along the living seating
// order (1 = next alive after the responder). Offset 0 means no target.
type Move struct {
	Action *Action
	Target int
}

func (m Move) String() string {
	if m.Target == 0 {
		return m.Action.Name
	}
	return fmt.Sprintf("%s_%d", m.Action.Name, m.Target)
}
