package http

import (
	"net/http"

	loanUsecase "loansharc-backend/internal/usecase/loanhistory"

	"github.com/labstack/echo/v4"
)

type LoanHistoryHandler struct{ uc *loanUsecase.Usecase }

func NewLoanHistoryHandler(uc *loanUsecase.Usecase) *LoanHistoryHandler {
	return &LoanHistoryHandler{uc: uc}
}

func (h *LoanHistoryHandler) ListLoans(c echo.Context) error {
	isActive, ok := queryBoolPtr(c.QueryParam("is_active"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid is_active"})
	}
	out, err := h.uc.List(c.Request().Context(), loanUsecase.ListInput{
		UserAddress: c.QueryParam("user_address"),
		IsActive:    isActive,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHistoryHandler) ListUserLoans(c echo.Context) error {
	isActive, ok := queryBoolPtr(c.QueryParam("is_active"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid is_active"})
	}
	out, err := h.uc.List(c.Request().Context(), loanUsecase.ListInput{
		UserAddress: c.Param("address"),
		IsActive:    isActive,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
