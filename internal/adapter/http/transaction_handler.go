package http

import (
	"errors"
	"net/http"
	"strconv"

	txDomain "loansharc-backend/internal/domain/transaction"
	txUsecase "loansharc-backend/internal/usecase/transaction"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionHandler struct{ uc *txUsecase.Usecase }

func NewTransactionHandler(uc *txUsecase.Usecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

type createTransactionReq struct {
	UserAddress          string          `json:"user_address" validate:"required,ethaddr"`
	TransactionType      string          `json:"transaction_type" validate:"required,txtype"`
	Amount               decimal.Decimal `json:"amount" validate:"required"`
	Currency             string          `json:"currency"`
	LoanID               *uint64         `json:"loan_id"`
	TxHash               *string         `json:"tx_hash"`
	BlockNumber          *int64          `json:"block_number"`
	TransactionTimestamp string          `json:"transaction_timestamp"`
	Status               string          `json:"status"`
	Metadata             *string         `json:"metadata"`
}

func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req createTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Create(c.Request().Context(), txUsecase.CreateInput{
		UserAddress:          req.UserAddress,
		TransactionType:      req.TransactionType,
		Amount:               req.Amount,
		Currency:             req.Currency,
		LoanID:               req.LoanID,
		TxHash:               req.TxHash,
		BlockNumber:          req.BlockNumber,
		TransactionTimestamp: req.TransactionTimestamp,
		Status:               req.Status,
		Metadata:             req.Metadata,
	})
	if err != nil {
		if errors.Is(err, txDomain.ErrDuplicateTx) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "tx_hash already recorded"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *TransactionHandler) listInput(c echo.Context) (txUsecase.ListInput, bool) {
	loanID, ok := queryUint64Ptr(c.QueryParam("loan_id"))
	if !ok {
		return txUsecase.ListInput{}, false
	}
	return txUsecase.ListInput{
		UserAddress: c.QueryParam("user_address"),
		Type:        c.QueryParam("transaction_type"),
		LoanID:      loanID,
		Page:        queryInt(c.QueryParam("page"), 1),
		PageSize:    queryInt(c.QueryParam("page_size"), 50),
	}, true
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	in, ok := h.listInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *TransactionHandler) ListUserTransactions(c echo.Context) error {
	in, ok := h.listInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	in.UserAddress = c.Param("address")
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransactionHandler) ListLoanTransactions(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	out, uerr := h.uc.List(c.Request().Context(), txUsecase.ListInput{
		LoanID:   &loanID,
		Page:     queryInt(c.QueryParam("page"), 1),
		PageSize: queryInt(c.QueryParam("page_size"), 50),
	})
	if uerr != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
