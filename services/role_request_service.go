package services

import (
	"context"
	"errors"
	"time"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/logger"
	"chef-marketplace-api/models"
	"chef-marketplace-api/statemachine"

	"gorm.io/gorm"
)

const msgRequestPending = "Request already pending"

// RoleRequestService owns the role elevation workflow: users submit requests and
// admins approve or reject them.
type RoleRequestService struct {
	db      *gorm.DB
	chefIDs *ChefIDGenerator
	now     func() time.Time
}

func NewRoleRequestService(db *gorm.DB) *RoleRequestService {
	return &RoleRequestService{db: db, chefIDs: NewChefIDGenerator(), now: time.Now}
}

// WithChefIDGenerator replaces the chef id allocator.
func (s *RoleRequestService) WithChefIDGenerator(g *ChefIDGenerator) *RoleRequestService {
	s.chefIDs = g
	return s
}

func (s *RoleRequestService) List(ctx context.Context) ([]models.RoleRequest, error) {
	var requests []models.RoleRequest
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Submit stores a new pending request. It fails with Conflict when the user already
// has one pending; the partial unique index settles races between concurrent submissions.
func (s *RoleRequestService) Submit(ctx context.Context, req *models.RoleRequest) (*models.InsertResult, error) {
	email := req.TargetEmail()
	if email == "" {
		return nil, apperrors.Validation("userEmail is required")
	}
	req.UserEmail = email
	req.RequestStatus = models.RequestPending
	req.DecidedAt = nil
	req.DecidedBy = ""

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNotFraud(tx, email); err != nil {
			return err
		}
		pending, err := s.hasPending(tx, email)
		if err != nil {
			return err
		}
		if pending {
			return apperrors.Conflict(msgRequestPending)
		}
		return tx.Create(req).Error
	})
	if err == nil {
		logger.CtxInfo(ctx, "role request submitted", "request_id", req.ID, "type", req.RequestType)
		return models.Inserted(req.ID), nil
	}
	if _, ok := apperrors.As(err); ok {
		return nil, err
	}

	// A losing concurrent insert trips the unique index; report it like the soft check.
	if pending, checkErr := s.hasPending(s.db.WithContext(ctx), email); checkErr == nil && pending {
		return nil, apperrors.Conflict(msgRequestPending)
	}
	return nil, err
}

func (s *RoleRequestService) hasPending(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.RoleRequest{}).
		Where("user_email = ? AND request_status = ?", email, models.RequestPending).
		Count(&count).Error
	return count > 0, err
}

// Resolve records an admin's decision on a pending request. On approval the requesting
// account is granted the role in the same transaction, so the decision and the grant are
// observed together or not at all. Decisions are final: resolving a request twice fails
// with Conflict.
func (s *RoleRequestService) Resolve(ctx context.Context, id string, decision models.RequestStatus, decidedBy string) (*models.UpdateResult, error) {
	if !statemachine.IsDecision(decision) {
		return nil, apperrors.Validation("status must be approved or rejected")
	}

	var result *models.UpdateResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.RoleRequest
		if err := findByID(tx, &req, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Request not found")
			}
			return err
		}

		if err := statemachine.CanResolve(req.RequestStatus, decision); err != nil {
			if errors.Is(err, statemachine.ErrAlreadyResolved) {
				return apperrors.Conflict("Request already resolved").WithDetails(map[string]any{"requestStatus": req.RequestStatus})
			}
			return apperrors.Validation(err.Error())
		}

		now := s.now()
		res := tx.Model(&models.RoleRequest{}).
			Where("id = ? AND request_status = ?", req.ID, models.RequestPending).
			Updates(map[string]any{"request_status": decision, "decided_by": decidedBy, "decided_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Request already resolved")
		}
		result = &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: res.RowsAffected}

		if decision != models.RequestApproved {
			return nil
		}
		return s.grantRole(ctx, tx, &req)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "role request resolved", "request_id", id, "status", decision, "decided_by", decidedBy)
	return result, nil
}

// grantRole applies the privilege requested by req to its account. An unknown account or
// an unsupported role leaves users untouched.
func (s *RoleRequestService) grantRole(ctx context.Context, tx *gorm.DB, req *models.RoleRequest) error {
	email := req.TargetEmail()
	role := req.RequestedRole()
	if email == "" {
		logger.CtxWarn(ctx, "approved role request has no email", "request_id", req.ID)
		return nil
	}

	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.CtxWarn(ctx, "approved role request matched no user", "request_id", req.ID, "email", email)
		return nil
	}
	if err != nil {
		return err
	}

	columns := map[string]any{}
	switch role {
	case models.RoleChef:
		// A chef keeps an id it already holds so existing meals and orders stay linked.
		chefID := ""
		if user.ChefID != nil && *user.ChefID != "" {
			chefID = *user.ChefID
		} else if chefID, err = s.chefIDs.Next(tx); err != nil {
			return err
		}
		columns["role"] = models.RoleChef
		columns["chef_id"] = chefID
	case models.RoleAdmin:
		columns["role"] = models.RoleAdmin
	default:
		logger.CtxWarn(ctx, "approved role request has unsupported type", "request_id", req.ID, "type", req.RequestType)
		return nil
	}

	return tx.Model(&models.User{}).Where("email = ?", email).Updates(columns).Error
}
