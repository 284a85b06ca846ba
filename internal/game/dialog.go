package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// chooseExportPath asks where to save the pyramid. An empty path with a nil
// error means the user cancelled.
func chooseExportPath() (string, error) {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Export Pyramid"),
		zenity.Filename("pyramid.glb"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "glTF Binary",
			Patterns: []string{"*.glb"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

// ReportFatal shows err in a desktop dialog. It is best effort: without a
// desktop the dialog fails silently and the caller's log line is all there is.
func ReportFatal(title string, err error) {
	_ = zenity.Error(err.Error(), zenity.Title(title), zenity.ErrorIcon)
}
