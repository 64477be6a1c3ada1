package handler_test

import (
	"os"

	"github.com/linelog/linelog/core"
	"github.com/linelog/linelog/handler"
)

// ExampleNewProgressHandler draws a ten-step progress bar: one
// overwritten background record followed by same-line fill characters.
func ExampleNewProgressHandler() {
	h := handler.NewProgressHandler(handler.ProgressConfig{
		Writer: os.Stdout,
	})
	defer h.Close()

	emit := func(msg string, line core.LineOptions) {
		e := core.GetEntry()
		e.Level = core.InfoLevel
		e.Message = msg
		e.Line = line
		h.Handle(e)
		core.PutEntry(e)
	}

	emit("Progress: [", core.LineOptions{SameLine: true})
	emit("          ]", core.LineOptions{SameLine: true, Overwrite: true})
	for i := 0; i < 10; i++ {
		emit("=", core.LineOptions{SameLine: true})
	}
	emit("done", core.LineOptions{})
}
