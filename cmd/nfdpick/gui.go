//go:build gio
// +build gio

package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"sync"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/leonwijng/nfd"
)

type GioUI struct {
	app   *App
	theme *material.Theme

	mu         sync.Mutex
	statusText string
	paths      []string
	busy       bool

	openBtn     widget.Clickable
	multipleBtn widget.Clickable
	saveBtn     widget.Clickable
	folderBtn   widget.Clickable
	copyBtn     widget.Clickable
	pathList    widget.List
}

func NewGioUI(a *App) *GioUI {
	theme := material.NewTheme()
	theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	return &GioUI{
		app:        a,
		theme:      theme,
		statusText: "Choose a dialog",
		pathList: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
	}
}

func (ui *GioUI) status() (string, []string, bool) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.statusText, ui.paths, ui.busy
}

// selectAsync runs the blocking dialog off the event loop.
func (ui *GioUI) selectAsync(w *app.Window, command string) {
	ui.mu.Lock()
	if ui.busy {
		ui.mu.Unlock()
		return
	}
	ui.busy = true
	ui.statusText = "⏳ Waiting for the dialog..."
	ui.mu.Unlock()

	go func() {
		paths, err := ui.app.Select(command)

		ui.mu.Lock()
		switch {
		case errors.Is(err, nfd.ErrCancelled):
			ui.statusText = "Cancelled"
		case err != nil:
			ui.app.Log.WithError(err).Error("dialog failed")
			ui.statusText = "❌ " + err.Error()
		default:
			ui.paths = paths
			ui.statusText = fmt.Sprintf("✓ %d selected", len(paths))
		}
		ui.busy = false
		ui.mu.Unlock()

		w.Invalidate()
	}()
}

func (ui *GioUI) Run(w *app.Window) error {
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			if ui.openBtn.Clicked(gtx) {
				ui.selectAsync(w, cmdOpen)
			}
			if ui.multipleBtn.Clicked(gtx) {
				ui.selectAsync(w, cmdOpenMultiple)
			}
			if ui.saveBtn.Clicked(gtx) {
				ui.selectAsync(w, cmdSave)
			}
			if ui.folderBtn.Clicked(gtx) {
				ui.selectAsync(w, cmdPickFolder)
			}

			if ui.copyBtn.Clicked(gtx) {
				_, paths, _ := ui.status()
				err := ui.app.WriteClipboard(strings.Join(paths, "\n"))
				ui.mu.Lock()
				if err != nil {
					ui.statusText = "❌ Failed to copy paths"
				} else {
					ui.statusText = "✓ Paths copied to clipboard!"
				}
				ui.mu.Unlock()
			}

			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *GioUI) Layout(gtx layout.Context) layout.Dimensions {
	statusText, paths, _ := ui.status()

	return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						title := material.H6(ui.theme, "nfdpick")
						title.Color = color.NRGBA{R: 63, G: 81, B: 181, A: 255}
						return title.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Body2(ui.theme, statusText).Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
				)
			}),

			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				if len(paths) == 0 {
					label := material.Body2(ui.theme, "(Nothing selected)")
					label.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
					return label.Layout(gtx)
				}
				return material.List(ui.theme, &ui.pathList).Layout(gtx, len(paths), func(gtx layout.Context, index int) layout.Dimensions {
					return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return material.Body2(ui.theme, strings.ToValidUTF8(paths[index], "�")).Layout(gtx)
					})
				})
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return ui.buttonRow(gtx,
							material.Button(ui.theme, &ui.openBtn, "📂 Open"),
							material.Button(ui.theme, &ui.multipleBtn, "🗂 Open multiple"),
						)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return ui.buttonRow(gtx,
							material.Button(ui.theme, &ui.saveBtn, "💾 Save"),
							material.Button(ui.theme, &ui.folderBtn, "📁 Pick folder"),
						)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(ui.theme, &ui.copyBtn, "📋 Copy paths")
						btn.Background = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
						return btn.Layout(gtx)
					}),
				)
			}),
		)
	})
}

func (ui *GioUI) buttonRow(gtx layout.Context, left, right material.ButtonStyle) layout.Dimensions {
	left.Background = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	right.Background = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceEvenly}.Layout(gtx,
		layout.Flexed(1, left.Layout),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Flexed(1, right.Layout),
	)
}

func runGUI(a *App) error {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("nfdpick"))
		w.Option(app.Size(unit.Dp(600), unit.Dp(500)))

		if err := NewGioUI(a).Run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(exitOK)
	}()

	app.Main()
	return nil
}
