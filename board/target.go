package board

type DropKind int

const (
	DropNone DropKind = iota
	DropSlot
	DropToken
)

func (k DropKind) String() string {
	switch k {
	case DropNone:
		return "none"
	case DropSlot:
		return "slot"
	case DropToken:
		return "token"
	default:
		return "unknown"
	}
}

// DropTarget is what owns an interaction point: a slot, a placed token, or
// nothing. Input layers resolve it once and the session dispatches on Kind.
type DropTarget struct {
	Kind  DropKind
	Slot  SlotID
	Token Token
}

func SlotTarget(id SlotID) DropTarget { return DropTarget{Kind: DropSlot, Slot: id} }

func TokenTarget(t Token) DropTarget { return DropTarget{Kind: DropToken, Token: t} }

func NoTarget() DropTarget { return DropTarget{} }

type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusToken
	FocusMenuButton
)

// FocusRequest asks the front end to move keyboard focus.
type FocusRequest struct {
	Kind  FocusKind
	Token Token
	Slot  SlotID
}
