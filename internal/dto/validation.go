// Package dto 定义 HTTP 层的请求和响应结构，以及请求的显式校验。
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors 校验结果，为空表示通过
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields 返回出错的字段名
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for _, e := range fe {
		names = append(names, e.Field)
	}
	return names
}

// Validator 可显式校验的请求
type Validator interface {
	Validate() FieldErrors
}

// 字段名取 json 或 form tag，需在任何结构体被校验并缓存之前注册
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// ValidateTags 按 binding tag 校验结构体，结果转换为 FieldErrors
func ValidateTags(obj interface{}) FieldErrors {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Message: err.Error()}}
	}
	errs := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return errs
}

func tagMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " cannot be empty"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return "invalid email format"
	case "gt":
		return field + " must be positive"
	case "gte":
		return field + " cannot be negative"
	}
	return field + " is invalid"
}

// checker 在 tag 校验之后补充跨字段规则
type checker struct {
	errs FieldErrors
}

func newChecker(obj interface{}) *checker {
	return &checker{errs: ValidateTags(obj)}
}

func (c *checker) add(field, msg string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: msg})
}

// failed 字段是否已经有错误
func (c *checker) failed(field string) bool {
	for _, e := range c.errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// MillisToTime 毫秒时间戳转 time.Time
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// 统计和列表查询接受的时间格式
var queryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseQueryTime 解析查询参数中的时间，按本地时区解释无时区的格式
func ParseQueryTime(value string) (time.Time, bool) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
