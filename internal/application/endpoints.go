package application

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/summarizeai/sai-cli/internal/domain"
)

const (
	authRegisterPath           = "/api/auth/register"
	authLoginPath              = "/api/auth/login"
	authMePath                 = "/api/auth/me"
	authForgotPasswordPath     = "/api/auth/forgot-password"
	authResetPasswordPath      = "/api/auth/reset-password"
	authValidateResetTokenPath = "/api/auth/validate-reset-token"

	summarizePath     = "/api/resumir-texto"
	historyPath       = "/api/historico"
	historyExportPath = "/api/historico/export"

	healthPath      = "/api/health/"
	healthReadyPath = "/api/health/ready"
)

func historyListPath(cursor domain.Cursor) string {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(cursor.Skip()))
	query.Set("limit", strconv.Itoa(cursor.PageSize))
	if cursor.Search != "" {
		query.Set("search", cursor.Search)
	}
	return historyPath + "?" + query.Encode()
}

func summaryDeletePath(id domain.SummaryID) string {
	return fmt.Sprintf("%s/%d", historyPath, id)
}

func exportPath(search string) string {
	if search == "" {
		return historyExportPath
	}
	query := url.Values{}
	query.Set("search", search)
	return historyExportPath + "?" + query.Encode()
}

func validateResetTokenPath(token string) string {
	return authValidateResetTokenPath + "/" + url.PathEscape(token)
}
