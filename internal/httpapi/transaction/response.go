package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID             `json:"id"`
	Address      string                `json:"address"`
	AccessCode   string                `json:"accessCode"`
	Status       transaction.Status    `json:"status"`
	Type         transaction.Type      `json:"type"`
	AgentID      uuid.UUID             `json:"agentId"`
	ClientID     *uuid.UUID            `json:"clientId,omitempty"`
	Participants []participantResponse `json:"participants"`

	ContractPrice     *int64 `json:"contractPrice,omitempty"`
	Commission        *int64 `json:"commission,omitempty"`
	EarnestMoney      *int64 `json:"earnestMoney,omitempty"`
	OptionFee         *int64 `json:"optionFee,omitempty"`
	DownPayment       *int64 `json:"downPayment,omitempty"`
	SellerConcessions *int64 `json:"sellerConcessions,omitempty"`

	ContractExecutionDate  *time.Time `json:"contractExecutionDate,omitempty"`
	OptionPeriodExpiration *time.Time `json:"optionPeriodExpiration,omitempty"`
	ClosingDate            *time.Time `json:"closingDate,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type participantResponse struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	participants := make([]participantResponse, len(tx.Participants))
	for i, p := range tx.Participants {
		participants[i] = participantResponse{UserID: p.UserID, Role: p.Role}
	}

	return transactionResponse{
		ID:                     tx.ID,
		Address:                tx.Address,
		AccessCode:             tx.AccessCode,
		Status:                 tx.Status,
		Type:                   tx.Type,
		AgentID:                tx.AgentID,
		ClientID:               tx.ClientID,
		Participants:           participants,
		ContractPrice:          tx.ContractPrice,
		Commission:             tx.Commission,
		EarnestMoney:           tx.EarnestMoney,
		OptionFee:              tx.OptionFee,
		DownPayment:            tx.DownPayment,
		SellerConcessions:      tx.SellerConcessions,
		ContractExecutionDate:  tx.ContractExecutionDate,
		OptionPeriodExpiration: tx.OptionPeriodExpiration,
		ClosingDate:            tx.ClosingDate,
		CreatedAt:              tx.CreatedAt,
		UpdatedAt:              tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type boardColumn struct {
	Status transaction.Status    `json:"status"`
	Cards  []transactionResponse `json:"cards"`
}

// toBoardResponse projects the flat list onto kanban columns, one per
// pipeline stage in board order. Empty columns are kept so the board always
// renders all five.
func toBoardResponse(txs []*transaction.Transaction) []boardColumn {
	columns := make([]boardColumn, len(transaction.Statuses))

	for i, status := range transaction.Statuses {
		columns[i] = boardColumn{Status: status, Cards: []transactionResponse{}}

		for _, tx := range txs {
			if tx.Status == status {
				columns[i].Cards = append(columns[i].Cards, toResponse(tx))
			}
		}
	}

	return columns
}
