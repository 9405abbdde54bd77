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

type TeacherService struct {
	repo   *repository.TeacherRepository
	cfg    *config.Config
	logger *zap.Logger
}

func NewTeacherService(repo *repository.TeacherRepository, cfg *config.Config, logger *zap.Logger) *TeacherService {
	return &TeacherService{repo: repo, cfg: cfg, logger: logger}
}

type TeacherRegisterReq struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	BranchID  uint   `json:"branchId" binding:"required"`
}

func (s *TeacherService) Register(req *TeacherRegisterReq) (*model.Teacher, string, error) {
	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	teacher := &model.Teacher{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		BranchID:  req.BranchID,
	}
	if err := s.repo.Create(teacher); err != nil {
		return nil, "", err
	}
	s.logger.Info("teacher registered", zap.Uint("teacherId", teacher.ID), zap.String("email", teacher.Email))

	token, err := util.GenerateJWT(teacher.ID, model.RoleTeacher, teacher.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return teacher, token, nil
}

func (s *TeacherService) Login(req *LoginReq) (*model.Teacher, string, error) {
	teacher, err := s.repo.FindByEmail(req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(req.Password)) != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(teacher.ID, model.RoleTeacher, teacher.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return teacher, token, nil
}

func (s *TeacherService) List() ([]model.Teacher, error) {
	return s.repo.List()
}

func (s *TeacherService) GetByID(id uint) (*model.Teacher, error) {
	teacher, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTeacherNotFound
	}
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

type TeacherUpdateReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	BranchID  *uint   `json:"branchId"`
}

func (s *TeacherService) Update(id uint, req *TeacherUpdateReq) (*model.Teacher, error) {
	teacher, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.BranchID != nil {
		teacher.BranchID = *req.BranchID
	}
	if err := s.repo.Update(teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// ReplaceProfileImage records the new image and returns the previous stored
// filename so the caller can remove the old file.
func (s *TeacherService) ReplaceProfileImage(id uint, url, filename string) (string, error) {
	teacher, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	old := teacher.ProfileImageFilename
	if err := s.repo.UpdateProfileImage(id, url, filename); err != nil {
		return "", err
	}
	return old, nil
}

func (s *TeacherService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
