package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newOpenCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a page in a window; the Down arrow scrolls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.newBrowser()
			if err := b.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			r := b.NewRenderer()
			b.Draw(r)

			a := app.New()
			w := a.NewWindow(fmt.Sprintf("toybrowser - %s", args[0]))
			width, height := r.Size()
			w.Resize(fyne.NewSize(float32(width), float32(height)))
			w.SetFixedSize(true)

			img := canvas.NewImageFromImage(r.Image())
			img.FillMode = canvas.ImageFillOriginal
			w.SetContent(img)

			log := opts.logger()
			w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
				if ev.Name != fyne.KeyDown {
					return
				}
				scroll := b.ScrollDown()
				drawn := b.Draw(r)
				img.Image = r.Image()
				img.Refresh()
				log.Debug("scrolled", zap.Float64("scroll", scroll), zap.Int("drawn", drawn))
			})

			w.ShowAndRun()
			return nil
		},
	}
}
