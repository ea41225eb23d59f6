package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeMove
	ModeFileInput
	ModeTemplates
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportPDF
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmReset
	ConfirmTemplate
	ConfirmOverwriteFile
)

const (
	moveStep         = 4.0
	moveStepFast     = 16.0
	fontSizeStep     = 4
	wheelFontStep    = 2
	doubleClickDelay = 400 * time.Millisecond
	maxTextLength    = 120
)

// palette is cycled by the fill and stroke color keys.
var palette = []string{
	"#ffffff",
	"#000000",
	"#00f5ff",
	"#ff006e",
	"#8eff00",
	"#bf00ff",
	"#ffe600",
}
