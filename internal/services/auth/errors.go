package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Correo o contraseña incorrectos.")
	ErrEmailTaken         = errors.New("Ya existe una cuenta con ese correo.")
	ErrUserNotFound       = errors.New("user not found")
	ErrSocialSignIn       = errors.New("Error al iniciar sesión con Google")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
