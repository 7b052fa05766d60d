package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeAt     Type = "at"
	TypeShow   Type = "show"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
	TypeReload Type = "reload"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type AtArgs struct {
	Latitude  float64
	Longitude float64
}

type ShowArgs struct {
	ID string
}

type DeleteArgs struct {
	ID string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	At     *AtArgs
	Show   *ShowArgs
	Delete *DeleteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeAt:
		return parseAt(input, args)
	case TypeShow:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a reminder id"}
		}
		return Command{Type: TypeShow, Raw: input, Show: &ShowArgs{ID: args[0]}}, nil
	case TypeDelete:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a reminder id"}
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &DeleteArgs{ID: args[0]}}, nil
	case TypeClear, TypeReload:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

// parseAt accepts "at 37.8 -122.4" and "at 37.8,-122.4".
func parseAt(raw string, args []string) (Command, error) {
	joined := strings.Join(args, " ")
	fields := strings.FieldsFunc(joined, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "at requires latitude and longitude"}
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid latitude: %s", fields[0])}
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid longitude: %s", fields[1])}
	}
	return Command{Type: TypeAt, Raw: raw, At: &AtArgs{Latitude: lat, Longitude: lng}}, nil
}
