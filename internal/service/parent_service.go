package service

import (
	"errors"

	"school_backend/internal/config"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ParentService struct {
	repo   *repository.ParentRepository
	cfg    *config.Config
	logger *zap.Logger
}

func NewParentService(repo *repository.ParentRepository, cfg *config.Config, logger *zap.Logger) *ParentService {
	return &ParentService{repo: repo, cfg: cfg, logger: logger}
}

type ParentRegisterReq struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
}

func (s *ParentService) Register(req *ParentRegisterReq) (*model.Parent, string, error) {
	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	parent := &model.Parent{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
	}
	if err := s.repo.Create(parent); err != nil {
		return nil, "", err
	}
	s.logger.Info("parent registered", zap.Uint("parentId", parent.ID), zap.String("email", parent.Email))

	token, err := util.GenerateJWT(parent.ID, model.RoleParent, parent.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return parent, token, nil
}

func (s *ParentService) Login(req *LoginReq) (*model.Parent, string, error) {
	parent, err := s.repo.FindByEmail(req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(parent.Password), []byte(req.Password)) != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(parent.ID, model.RoleParent, parent.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return parent, token, nil
}

func (s *ParentService) List() ([]model.Parent, error) {
	return s.repo.List()
}

func (s *ParentService) GetByID(id uint) (*model.Parent, error) {
	parent, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrParentNotFound
	}
	if err != nil {
		return nil, err
	}
	return parent, nil
}

type ParentUpdateReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

func (s *ParentService) Update(id uint, req *ParentUpdateReq) (*model.Parent, error) {
	parent, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		parent.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		parent.LastName = *req.LastName
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}
	if err := s.repo.Update(parent); err != nil {
		return nil, err
	}
	return parent, nil
}

func (s *ParentService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
