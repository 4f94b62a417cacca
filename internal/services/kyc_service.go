package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// BookingKYCStore records document references on a booking
type BookingKYCStore interface {
	AttachKYC(bookingID, idProofRef, selfieRef string) error
}

// KYCService stores uploaded KYC documents as opaque blobs and records
// their references on the booking
type KYCService struct {
	uploadDir string
	bookings  BookingKYCStore
	logger    *logrus.Logger
}

// NewKYCService creates a new KYCService
func NewKYCService(uploadDir string, bookings BookingKYCStore, logger *logrus.Logger) *KYCService {
	return &KYCService{
		uploadDir: uploadDir,
		bookings:  bookings,
		logger:    logger,
	}
}

// SaveDocuments stores the id proof and selfie for a booking and attaches
// the stored references to it. Returns the two references.
func (s *KYCService) SaveDocuments(bookingID, idProofName string, idProof io.Reader, selfieName string, selfie io.Reader) (string, string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	idProofRef, err := s.saveBlob(fmt.Sprintf("%s_id_proof_%s", bookingID, filepath.Base(idProofName)), idProof)
	if err != nil {
		return "", "", err
	}

	selfieRef, err := s.saveBlob(fmt.Sprintf("%s_selfie_%s", bookingID, filepath.Base(selfieName)), selfie)
	if err != nil {
		return "", "", err
	}

	if err := s.bookings.AttachKYC(bookingID, idProofRef, selfieRef); err != nil {
		return "", "", err
	}

	s.logger.WithField("booking_id", bookingID).Info("KYC documents uploaded")

	return idProofRef, selfieRef, nil
}

func (s *KYCService) saveBlob(name string, src io.Reader) (string, error) {
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}
