package telegram

import "github.com/go-telegram/bot/models"

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// OptionsKeyboard lays answer options out in rows of the given width, each
// button carrying the callback data produced for its option.
func OptionsKeyboard(options []string, columns int, data func(option string) string) *models.InlineKeyboardMarkup {
	if columns < 1 {
		columns = 1
	}
	var rows [][]models.InlineKeyboardButton
	for i := 0; i < len(options); i += columns {
		row := make([]models.InlineKeyboardButton, 0, columns)
		for _, opt := range options[i:min(i+columns, len(options))] {
			row = append(row, InlineButton(opt, data(opt)))
		}
		rows = append(rows, row)
	}
	return InlineKeyboard(rows...)
}
