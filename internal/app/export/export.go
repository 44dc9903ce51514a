// Package export writes transcription records to spreadsheet files.
package export

import (
	"github.com/tealeg/xlsx"

	apperrors "transcribe-ui/internal/app/errors"
	"transcribe-ui/internal/app/model"
	"transcribe-ui/internal/app/view"
)

// SheetName is the worksheet holding the records
const SheetName = "Transcriptions"

// ToExcel writes one row per record under the table headers shown in the UI
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return apperrors.Wrap(err, "failed to add sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range view.TableHeaders {
		headerRow.AddCell().Value = h
	}

	for _, row := range view.Rows(transcriptions) {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrapf(err, "failed to save %s", outputFilePath)
	}
	return nil
}
