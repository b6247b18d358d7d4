package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// Client-facing messages.
const (
	MsgMissingFields     = "Missing required fields."
	MsgMissingChatFields = "Missing guideId or message."
	MsgGuideNotFound     = "Guide not found."
	MsgGuideConflict     = "Guide was modified by another request. Please retry."
)

var validate = validator.New()

type guideInput struct {
	Vehicle  models.Vehicle
	Question string `validate:"required"`
}

type chatInput struct {
	GuideID string `validate:"required"`
	Message string `validate:"required"`
}

// validateGuideInput trims the vehicle and question and checks that none of
// them is blank.
func validateGuideInput(op string, v models.Vehicle, question string) (models.Vehicle, string, error) {
	in := guideInput{Vehicle: v.Trimmed(), Question: strings.TrimSpace(question)}
	if err := validate.Struct(in); err != nil {
		return models.Vehicle{}, "", apperr.E(apperr.CodeInvalidArgument, op, MsgMissingFields, err)
	}
	return in.Vehicle, in.Question, nil
}

func validateChatInput(op, guideID, message string) (string, string, error) {
	in := chatInput{GuideID: strings.TrimSpace(guideID), Message: strings.TrimSpace(message)}
	if err := validate.Struct(in); err != nil {
		return "", "", apperr.E(apperr.CodeInvalidArgument, op, MsgMissingChatFields, err)
	}
	return in.GuideID, in.Message, nil
}
