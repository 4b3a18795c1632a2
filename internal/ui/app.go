package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	core "CalmBoard/internal/app"
	"CalmBoard/internal/config"
	"CalmBoard/internal/input"
)

// RunApp opens the board window and blocks until it is closed.
func RunApp(cfg *config.Config, client core.Analyzer, endpoint string) error {
	myApp := app.NewWithID("io.calmboard")
	myWindow := myApp.NewWindow("CalmBoard")
	myWindow.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	board := NewBoardWidget()
	card := newFeedbackCard(myWindow)

	c, err := core.New(core.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Client:   client,
		View:     card,
		Geometry: input.GeometryFunc(board.Bounds),
		Dispatch: fyne.Do,
	})
	if err != nil {
		return err
	}
	defer c.Close()
	board.Bind(c)

	tools := newToolbar(c, myWindow, endpoint)

	content := container.NewBorder(tools.content, card.scroll, nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
	return nil
}
