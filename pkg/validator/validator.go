package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s은(는) 필수 항목입니다", field)
	case "email":
		return "올바른 이메일 형식이 아닙니다."
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s은(는) 최소 %s자 이상이어야 합니다", field, fe.Param())
		}
		return fmt.Sprintf("%s은(는) 최소 %s 이상이어야 합니다", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s은(는) 최대 %s자까지 입력할 수 있습니다", field, fe.Param())
		}
		return fmt.Sprintf("%s은(는) 최대 %s까지 입력할 수 있습니다", field, fe.Param())
	default:
		return fmt.Sprintf("%s이(가) 올바르지 않습니다", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":           "이메일",
		"Password":        "비밀번호",
		"NewPassword":     "새 비밀번호",
		"CurrentPassword": "현재 비밀번호",
		"Nickname":        "닉네임",
		"ExpertField":     "전문 분야",
		"CareerInfo":      "경력 정보",
		"Title":           "제목",
		"Summary":         "요약",
		"Content":         "내용",
		"Category":        "카테고리",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
