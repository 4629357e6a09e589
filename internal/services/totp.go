package services

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type TOTPSetup struct {
	Secret string
	QRCode string
}

// SetupTOTP generates a fresh secret and QR code for the admin. The factor is
// not active until VerifyTOTP confirms the admin can produce codes.
func (s *AuthService) SetupTOTP(userID uuid.UUID) (*TOTPSetup, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	opts := totp.GenerateOpts{
		Issuer:      s.cfg.TOTP.Issuer,
		AccountName: user.Username,
		Period:      s.cfg.TOTP.Period,
		Digits:      totpDigits(s.cfg.TOTP.Digits),
	}

	key, err := totp.Generate(opts)
	if err != nil {
		return nil, err
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, err
	}
	qrBase64 := base64.StdEncoding.EncodeToString(pngBuf.Bytes())

	secret := key.Secret()
	user.TOTPSecret = &secret
	enabled := false
	user.TOTPEnabled = &enabled

	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	return &TOTPSetup{
		Secret: secret,
		QRCode: "data:image/png;base64," + qrBase64,
	}, nil
}

// VerifyTOTP enables the second factor after a valid code.
func (s *AuthService) VerifyTOTP(userID uuid.UUID, code string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.TOTPSecret == nil {
		return ErrTOTPSecretNotCreated
	}

	if !s.validateTOTP(*user.TOTPSecret, code) {
		return ErrInvalidTOTPCode
	}

	enabled := true
	user.TOTPEnabled = &enabled
	return s.users.Update(user)
}

// DisableTOTP requires a valid current code to turn the factor off.
func (s *AuthService) DisableTOTP(userID uuid.UUID, code string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.TOTPEnabled == nil || !*user.TOTPEnabled {
		return ErrTOTPNotEnabled
	}
	if user.TOTPSecret == nil {
		return ErrTOTPSecretNotCreated
	}

	if !s.validateTOTP(*user.TOTPSecret, code) {
		return ErrInvalidTOTPCode
	}

	enabled := false
	user.TOTPEnabled = &enabled
	return s.users.Update(user)
}

func (s *AuthService) validateTOTP(secret, code string) bool {
	valid, err := totp.ValidateCustom(
		code,
		secret,
		time.Now(),
		totp.ValidateOpts{
			Period:    s.cfg.TOTP.Period,
			Skew:      1,
			Digits:    totpDigits(s.cfg.TOTP.Digits),
			Algorithm: otp.AlgorithmSHA1,
		},
	)
	if err != nil {
		return false
	}
	return valid
}

func totpDigits(d uint) otp.Digits {
	switch d {
	case 8:
		return otp.DigitsEight
	default:
		return otp.DigitsSix
	}
}
