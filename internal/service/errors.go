package service

import (
	"errors"

	"nexus-ems-be/internal/pkg/serverutils"
)

func clientMessage(err error) string {
	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
