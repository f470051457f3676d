package utils

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hublist/hublist/hublist/config"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Database failures, network issues, internal server errors
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// PermissionError - Unauthorized actions, access denied
	PermissionError
	// BusinessLogicError - Cooldowns, ineligible listings, directory rule violations
	BusinessLogicError
)

// getErrorPrefix returns the appropriate emoji prefix for error types
func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

// getErrorColor returns the appropriate color for error types
func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError:
		return config.WarningColor
	case SystemError:
		return config.ErrorColor
	case NotFoundError:
		return config.InfoColor
	case PermissionError:
		return config.ErrorColor
	case BusinessLogicError:
		return config.WarningColor
	default:
		return config.ErrorColor
	}
}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

// CreateEphemeralError creates an ephemeral error message for component events
func (h *ResponseHandler) CreateEphemeralError(event *handler.ComponentEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// CreateError creates a detailed error embed with title and description
func (h *ResponseHandler) CreateError(event *handler.CommandEvent, title, description string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "❌ " + title,
			Description: fmt.Sprintf("```diff\n- %s\n```", description),
			Color:       config.ErrorColor,
		}},
	})
}

// CreateClassifiedError creates an error response with automatic categorization
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	prefix := getErrorPrefix(errorType)
	color := getErrorColor(errorType)

	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: prefix + " " + message,
			Color:       color,
		}},
	})
}

// CreateUserError creates an error response for user input issues
func (h *ResponseHandler) CreateUserError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, UserError, message)
}

// CreateSystemError creates an error response for system/technical failures
func (h *ResponseHandler) CreateSystemError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, SystemError, message)
}

// CreateNotFoundError creates an error response for resources that don't exist
func (h *ResponseHandler) CreateNotFoundError(event *handler.CommandEvent, resource, identifier string) error {
	message := fmt.Sprintf("%s '%s' not found", resource, identifier)
	return h.CreateClassifiedError(event, NotFoundError, message)
}

// CreatePermissionError creates an error response for unauthorized actions
func (h *ResponseHandler) CreatePermissionError(event *handler.CommandEvent, action string) error {
	message := fmt.Sprintf("You don't have permission to %s", action)
	return h.CreateClassifiedError(event, PermissionError, message)
}

// CreateBusinessLogicError creates an error response for directory rule violations
func (h *ResponseHandler) CreateBusinessLogicError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, BusinessLogicError, message)
}

// HandleError provides centralized error handling for different event types
func (h *ResponseHandler) HandleError(event interface{}, message string) error {
	switch e := event.(type) {
	case *handler.CommandEvent:
		return h.CreateErrorEmbed(e, message)
	case *handler.ComponentEvent:
		return h.CreateEphemeralError(e, message)
	default:
		return fmt.Errorf("unsupported event type for error handling")
	}
}

// AutoClassifyError attempts to automatically classify errors based on message content
func (h *ResponseHandler) AutoClassifyError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, classifyErrorByMessage(message), message)
}

func classifyErrorByMessage(message string) ErrorType {
	lowerMsg := strings.ToLower(message)

	if strings.Contains(lowerMsg, "not found") ||
		strings.Contains(lowerMsg, "no results") ||
		strings.Contains(lowerMsg, "doesn't exist") {
		return NotFoundError
	}

	if strings.Contains(lowerMsg, "invalid") ||
		strings.Contains(lowerMsg, "must be") ||
		strings.Contains(lowerMsg, "required") ||
		strings.Contains(lowerMsg, "please provide") {
		return UserError
	}

	if strings.Contains(lowerMsg, "cooldown") ||
		strings.Contains(lowerMsg, "wait") ||
		strings.Contains(lowerMsg, "limit") ||
		strings.Contains(lowerMsg, "already") {
		return BusinessLogicError
	}

	if strings.Contains(lowerMsg, "permission") ||
		strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "access denied") {
		return PermissionError
	}

	return SystemError
}
