package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/pkg/events"
	pkgNats "ai-debtchat-be/pkg/nats"
)

type IPaymentService interface {
	CreatePaymentLink(ctx context.Context, req *dto.CreatePaymentLinkRequest) (*dto.PaymentLinkResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) error
	ListTransactions(ctx context.Context, debtAccountId uuid.UUID) ([]*dto.PaymentTransactionResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *paymentService) CreatePaymentLink(ctx context.Context, req *dto.CreatePaymentLinkRequest) (*dto.PaymentLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.DebtAccountRepository().FindOne(ctx, specification.ByID{ID: req.DebtAccountId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: account.DebtorId})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	txType := req.Type
	if txType == "" {
		txType = entity.TransactionTypePayment
	}

	tx := &entity.PaymentTransaction{
		DebtAccountId: account.Id,
		Amount:        req.Amount,
		Type:          txType,
		Status:        entity.TransactionStatusPending,
		Metadata:      map[string]interface{}{"account_number": account.AccountNumber},
	}
	if err := uow.PaymentTransactionRepository().Create(ctx, tx); err != nil {
		return nil, err
	}
	orderId := tx.Id.String()
	tx.TransactionId = &orderId
	if err := uow.PaymentTransactionRepository().Update(ctx, tx); err != nil {
		return nil, err
	}

	// External call after the row is committed, the webhook can always find
	// its transaction.
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	email := ""
	if debtor.Email != nil {
		email = *debtor.Email
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(req.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: debtor.Name,
			Email: email,
			Phone: debtor.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    account.Id.String(),
				Price: int64(req.Amount),
				Qty:   1,
				Name:  fmt.Sprintf("Repayment for account %s", account.AccountNumber),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	if s.eventPublisher != nil {
		evt := events.NewPaymentEvent(events.TypePaymentLinkCreated, orderId, account.Id.String(), req.Amount)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("PaymentService", "payment event publish failed", map[string]interface{}{
				"order_id": orderId,
				"error":    err.Error(),
			})
		}
	}

	return &dto.PaymentLinkResponse{
		TransactionId: tx.Id,
		OrderId:       orderId,
		PaymentURL:    snapResp.RedirectURL,
		Amount:        req.Amount,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return fmt.Errorf("invalid signature")
	}

	txId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	tx, err := uow.PaymentTransactionRepository().FindOne(ctx, specification.ByID{ID: txId})
	if err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("transaction not found")
	}
	if tx.Status != entity.TransactionStatusPending {
		// Already settled or failed, the gateway retries notifications.
		return uow.Commit()
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		now := time.Now().UTC()
		tx.Status = entity.TransactionStatusCompleted
		tx.ProcessedAt = &now
		method := req.PaymentType
		tx.PaymentMethod = &method
		if err := uow.PaymentTransactionRepository().Update(ctx, tx); err != nil {
			return err
		}
		if err := s.applyToAccount(ctx, uow, tx); err != nil {
			return err
		}
		if err := uow.Commit(); err != nil {
			return err
		}
		if s.eventPublisher != nil {
			evt := events.NewPaymentEvent(events.TypePaymentSettled, req.OrderId, tx.DebtAccountId.String(), tx.Amount)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.log.Warn("PaymentService", "payment event publish failed", map[string]interface{}{
					"order_id": req.OrderId,
					"error":    err.Error(),
				})
			}
		}
		return nil
	case "deny", "cancel", "expire", "failure":
		tx.Status = entity.TransactionStatusFailed
		if err := uow.PaymentTransactionRepository().Update(ctx, tx); err != nil {
			return err
		}
		return uow.Commit()
	default:
		// pending and in-process statuses leave the row untouched
		return uow.Commit()
	}
}

// applyToAccount reduces the outstanding balance and flips the account
// status when the debt is cleared. A settlement transaction clears the
// account regardless of the remaining balance.
func (s *paymentService) applyToAccount(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction) error {
	account, err := uow.DebtAccountRepository().FindOne(ctx, specification.ByID{ID: tx.DebtAccountId})
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	account.OutstandingAmount -= tx.Amount
	if account.OutstandingAmount < 0 {
		account.OutstandingAmount = 0
	}
	if account.OutstandingAmount == 0 || tx.Type == entity.TransactionTypeSettlement {
		account.Status = entity.DebtStatusSettled
	}
	return uow.DebtAccountRepository().Update(ctx, account)
}

func (s *paymentService) ListTransactions(ctx context.Context, debtAccountId uuid.UUID) ([]*dto.PaymentTransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txs, err := uow.PaymentTransactionRepository().FindAll(ctx,
		specification.ByDebtAccountID{DebtAccountID: debtAccountId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PaymentTransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, &dto.PaymentTransactionResponse{
			Id:          t.Id,
			Amount:      t.Amount,
			Type:        t.Type,
			Status:      t.Status,
			ProcessedAt: t.ProcessedAt,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}
