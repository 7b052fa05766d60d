package viewmodel

import (
	"github.com/sandeepkv93/locrem/internal/livedata"
	"github.com/sandeepkv93/locrem/internal/navigation"
)

// MessageKey names a user-facing message the shell resolves to text.
type MessageKey string

const (
	MessageEnterTitle     MessageKey = "err_enter_title"
	MessageSelectLocation MessageKey = "err_select_location"
)

var messageText = map[MessageKey]string{
	MessageEnterTitle:     "Please enter title",
	MessageSelectLocation: "Please select location",
}

func (k MessageKey) Text() string {
	if text, ok := messageText[k]; ok {
		return text
	}
	return string(k)
}

// Base is the state every screen view-model shares. Loading and empty flags
// are sticky values; the rest are one-shot events the shell consumes.
type Base struct {
	ShowErrorMessage  *livedata.Event[string]
	ShowSnackBar      *livedata.Event[string]
	ShowSnackBarInt   *livedata.Event[MessageKey]
	ShowToast         *livedata.Event[string]
	ShowLoading       *livedata.Value[bool]
	ShowNoData        *livedata.Value[bool]
	NavigationCommand *livedata.Event[navigation.Command]
}

func newBase() Base {
	return Base{
		ShowErrorMessage:  livedata.NewEvent[string](),
		ShowSnackBar:      livedata.NewEvent[string](),
		ShowSnackBarInt:   livedata.NewEvent[MessageKey](),
		ShowToast:         livedata.NewEvent[string](),
		ShowLoading:       &livedata.Value[bool]{},
		ShowNoData:        &livedata.Value[bool]{},
		NavigationCommand: livedata.NewEvent[navigation.Command](),
	}
}
