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

type StudentService struct {
	repo   *repository.StudentRepository
	cfg    *config.Config
	logger *zap.Logger
}

func NewStudentService(repo *repository.StudentRepository, cfg *config.Config, logger *zap.Logger) *StudentService {
	return &StudentService{repo: repo, cfg: cfg, logger: logger}
}

type StudentRegisterReq struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	SchoolNumber string `json:"schoolNumber" binding:"required"`
	ClassLevel   string `json:"classLevel" binding:"required"`
	Section      string `json:"section" binding:"required"`
	ParentID     *uint  `json:"parentId"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *StudentService) Register(req *StudentRegisterReq) (*model.Student, string, error) {
	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	student := &model.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hashed),
		SchoolNumber: req.SchoolNumber,
		ClassLevel:   req.ClassLevel,
		Section:      req.Section,
		ParentID:     req.ParentID,
	}
	if err := s.repo.Create(student); err != nil {
		return nil, "", err
	}
	s.logger.Info("student registered", zap.Uint("studentId", student.ID), zap.String("email", student.Email))

	token, err := util.GenerateJWT(student.ID, model.RoleStudent, student.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

func (s *StudentService) Login(req *LoginReq) (*model.Student, string, error) {
	student, err := s.repo.FindByEmail(req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(student.ID, model.RoleStudent, student.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

func (s *StudentService) List() ([]model.Student, error) {
	return s.repo.List()
}

func (s *StudentService) GetByID(id uint) (*model.Student, error) {
	student, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

type StudentUpdateReq struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	ClassLevel *string `json:"classLevel"`
	Section    *string `json:"section"`
	ParentID   *uint   `json:"parentId"`
	Avatar     *string `json:"avatar"`
}

func (s *StudentService) Update(id uint, req *StudentUpdateReq) (*model.Student, error) {
	student, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.ClassLevel != nil {
		student.ClassLevel = *req.ClassLevel
	}
	if req.Section != nil {
		student.Section = *req.Section
	}
	if req.ParentID != nil {
		student.ParentID = req.ParentID
	}
	if req.Avatar != nil {
		student.Avatar = *req.Avatar
	}
	if err := s.repo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
