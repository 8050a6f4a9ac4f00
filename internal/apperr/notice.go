package apperr

import "errors"

// Notice maps err to the title and message shown to the user.
func Notice(err error) (title, message string) {
	if err == nil {
		return "", ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "Error", err.Error()
	}

	message = e.Message
	if message == "" && e.Err != nil {
		message = e.Err.Error()
	}

	switch e.Kind {
	case KindValidation:
		title = "Attention"
	case KindNetwork:
		title = "Search Error"
		if message == "" {
			message = "Could not reach the university directory. Check your connection or the URL."
		}
	case KindDecode:
		title = "Search Error"
		if message == "" {
			message = "The university directory returned an unexpected response."
		}
	case KindStorageRead:
		title = "Error"
		if message == "" {
			message = "Could not load saved favorites."
		}
	case KindStorageWrite:
		title = "Error Saving"
		if message == "" {
			message = "Could not save favorites."
		}
	default:
		title = "Error"
	}
	return title, message
}
