package leavebalanceerrors

import (
	"net/http"

	"github.com/BadrBouzakri/conges/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInvalidBalanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave balance id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"a balance already exists for this user, type and year",
		http.StatusConflict,
	)
)
