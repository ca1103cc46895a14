package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// registerValidators adds the notblank tag to gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
				panic(fmt.Sprintf("register notblank validator: %v", err))
			}
		}
	})
}

// fieldMessages maps request struct fields to client-facing messages.
var fieldMessages = map[string]string{
	"Name":          "Name is required",
	"CarID":         "Car ID is required",
	"CarOwner":      "Car owner is required",
	"DealerID":      "Dealer ID is required",
	"PreferredDate": "Preferred date is required",
}

// validationMessage joins the messages of all failed fields in declaration order.
func validationMessage(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		if msg, ok := fieldMessages[fe.StructField()]; ok {
			messages = append(messages, msg)
			continue
		}
		messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
	}
	return strings.Join(messages, ", ")
}

// bindJSON decodes and validates the request body. Decoding failures become
// BadRequestError; validation failures are returned as validator.ValidationErrors.
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs
	}
	return &BadRequestError{Message: msgMalformedBody, Err: err}
}
