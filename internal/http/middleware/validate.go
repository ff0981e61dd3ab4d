package middleware

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"tasks_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MsgInvalidID     = "ID must be a valid number"
	MsgInvalidBody   = "invalid request body"
	MsgUserRequired  = "Name and email are required"
	MsgTitleRequired = "Title is required"
	MsgTitleTooLong  = "Title too long (maximum 100 characters)"

	idKey        = "id"
	userInputKey = "user_input"
	taskInputKey = "task_input"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	}
}

// ValidID rejects a non-numeric or non-positive :id before the handler runs.
// Any positive number is accepted: whole values such as 1.0 or 1e0 address
// row 1, while fractional or out-of-range values become noRowID so the
// statement still runs and reports not found.
func ValidID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": MsgInvalidID})
			return
		}
		c.Set(idKey, id)
		c.Next()
	}
}

// noRowID never matches a row: ids are assigned from 1.
const noRowID int64 = 0

func parseID(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 {
		return noRowID, true
	}
	return int64(f), true
}

// ValidUser binds the body into domain.UserInput; nome and email must be
// non-blank.
func ValidUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.UserInput
		if err := bindJSON(c, &in); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": MsgUserRequired})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
			return
		}
		c.Set(userInputKey, &in)
		c.Next()
	}
}

// ValidTask binds the body into domain.TaskInput; titulo must be non-blank and
// at most 100 characters.
func ValidTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.TaskInput
		if err := bindJSON(c, &in); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
				return
			}
			msg := MsgTitleRequired
			for _, fe := range verrs {
				if fe.Tag() == "max" {
					msg = MsgTitleTooLong
				}
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		c.Set(taskInputKey, &in)
		c.Next()
	}
}

// bindJSON treats an empty body as {} so missing fields are reported as
// validation errors rather than a decode failure.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// ID returns the id stored by ValidID.
func ID(c *gin.Context) int64 {
	return c.GetInt64(idKey)
}

func UserInput(c *gin.Context) *domain.UserInput {
	v, _ := c.Get(userInputKey)
	in, _ := v.(*domain.UserInput)
	return in
}

func TaskInput(c *gin.Context) *domain.TaskInput {
	v, _ := c.Get(taskInputKey)
	in, _ := v.(*domain.TaskInput)
	return in
}
