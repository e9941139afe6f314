package validator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"file-storage-api/internal/interface/api/rest/dto/user"
)

const (
	minUsernameLen = 4
	maxUsernameLen = 20
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe
)

var (
	usernameRe    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	specialCharRe = regexp.MustCompile(`[!@#$%^&*()_+={}[\]:;<>,.?|/~` + "`" + `']`)
)

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}
	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidUsername(name string) bool {
	l := utf8.RuneCountInString(name)
	if l < minUsernameLen || l > maxUsernameLen {
		return false
	}
	return usernameRe.MatchString(name)
}

// ValidPassword requires at least 6 characters with one uppercase letter
// and one special character.
func ValidPassword(psw string) bool {
	if len(psw) < minPasswordLen || len(psw) > maxPasswordLen {
		return false
	}
	return upperRe.MatchString(psw) && specialCharRe.MatchString(psw)
}

func ValidateRegister(r user.Request) map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)

	if username == "" {
		errs["username"] = "username is required"
	} else if !ValidUsername(username) {
		errs["username"] = "username must be 4-20 characters, start with a letter, letters and digits only"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if !ValidPassword(r.Password) {
		errs["password"] = "password must be at least 6 characters with an uppercase letter and a special character"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(username, password string) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
