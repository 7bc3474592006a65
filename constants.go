package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOverwriteFile
)

const (
	marginX     = 2
	tokenGap    = 2
	tokenHeight = 3
	slotHeight  = tokenHeight + 2
	slotLabelW  = 4
	minMenuW    = 16

	menuButtonClosed  = "[v]"
	menuButtonOpen    = "[^]"
	menuButtonFocused = ">v<"

	defaultPNGName = "wordslot.png"
	defaultTXTName = "wordslot.txt"
)
