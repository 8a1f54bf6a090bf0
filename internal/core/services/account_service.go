package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lukmanha083/kidkazz-ledger/internal/apperrors"
	"github.com/lukmanha083/kidkazz-ledger/internal/core/domain"
	portsrepo "github.com/lukmanha083/kidkazz-ledger/internal/core/ports/repositories"
	"github.com/lukmanha083/kidkazz-ledger/internal/dto"
	"github.com/lukmanha083/kidkazz-ledger/internal/middleware"
)

// AccountService manages the chart of accounts.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(repo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: repo}
}

// CreateAccount validates and persists a new chart-of-accounts node. The
// parent, when given, must exist and be a summary account: posting history
// must stay attributable to leaves only.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	accountType := domain.AccountType(req.AccountType)
	normalBalance := domain.DefaultNormalBalance(accountType)
	if req.NormalBalance != "" {
		normalBalance = domain.NormalBalance(req.NormalBalance)
	}

	level := 1
	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrInvalidHierarchy, req.ParentAccountID)
			}
			logger.Error("Failed to load parent account", slog.String("error", err.Error()), slog.String("parent_account_id", req.ParentAccountID))
			return nil, err
		}
		if parent.IsDetailAccount {
			return nil, fmt.Errorf("%w: parent account %s is a detail account", apperrors.ErrInvalidHierarchy, parent.Code)
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s", apperrors.ErrInvalidHierarchy, parent.Code, parent.AccountType)
		}
		level = parent.Level + 1
	}

	isDetail := true
	if req.IsDetailAccount != nil {
		isDetail = *req.IsDetailAccount
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     accountType,
		AccountCategory: req.AccountCategory,
		NormalBalance:   normalBalance,
		ParentAccountID: req.ParentAccountID,
		Level:           level,
		IsDetailAccount: isDetail,
		Status:          domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateCode) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", account.Code))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by code", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to find accounts by IDs", slog.String("error", err.Error()), slog.Int("count", len(accountIDs)))
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) ListAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.FindAccountsByParent(ctx, parentAccountID)
	if err != nil {
		logger.Error("Failed to list child accounts", slog.String("error", err.Error()), slog.String("parent_account_id", parentAccountID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListAccountTree returns the full chart of accounts as a nested tree, roots
// and siblings ordered by code.
func (s *AccountService) ListAccountTree(ctx context.Context) ([]dto.AccountNode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}

	childrenByParent := make(map[string][]domain.Account)
	for _, a := range accounts {
		childrenByParent[a.ParentAccountID] = append(childrenByParent[a.ParentAccountID], a)
	}

	var build func(parentID string) []dto.AccountNode
	build = func(parentID string) []dto.AccountNode {
		children := childrenByParent[parentID]
		if len(children) == 0 {
			return nil
		}
		nodes := make([]dto.AccountNode, len(children))
		for i := range children {
			nodes[i] = dto.AccountNode{
				AccountResponse: dto.ToAccountResponse(&children[i]),
				Children:        build(children[i].AccountID),
			}
		}
		return nodes
	}

	tree := build("")
	if tree == nil {
		tree = []dto.AccountNode{}
	}
	return tree, nil
}

// UpdateAccount applies updates to an account. Structural fields (normal
// balance, detail flag) are frozen once the account has postings, since
// changing them would silently reinterpret historical balances.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if req.NormalBalance != nil || req.IsDetailAccount != nil {
		hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
		if err != nil {
			logger.Error("Failed to check account postings", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		if hasPostings {
			return nil, fmt.Errorf("%w: structural fields of account %s are immutable", apperrors.ErrAccountHasTransactions, account.Code)
		}
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountCategory != nil {
		account.AccountCategory = *req.AccountCategory
	}
	if req.NormalBalance != nil {
		account.NormalBalance = domain.NormalBalance(*req.NormalBalance)
	}
	if req.IsDetailAccount != nil {
		account.IsDetailAccount = *req.IsDetailAccount
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Accounts that appear on journal
// lines are never removed; they only stop accepting new postings.
func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for deactivation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}
	if account.Status != domain.AccountActive {
		return fmt.Errorf("%w: account %s is not active", apperrors.ErrValidation, account.Code)
	}

	now := time.Now()
	account.Status = domain.AccountInactive
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
