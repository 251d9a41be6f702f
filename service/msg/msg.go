package msg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translation "github.com/go-playground/validator/v10/translations/en"
	zh_translation "github.com/go-playground/validator/v10/translations/zh"
)

// Response 统一响应结构
type Response struct {
	Code int            `json:"code"`
	Msg  any            `json:"msg"`
	Data map[string]any `json:"data"`
}

// ErrResponseST 错误响应结构，Err里放字段级校验信息
type ErrResponseST struct {
	Code int            `json:"code"`
	Msg  any            `json:"msg"`
	Data map[string]any `json:"data"`
	Err  any            `json:"err"`
}

var (
	trans     ut.Translator
	transOnce sync.Once
	transErr  error
)

// initTranslator 把gin的validator绑上中文翻译器，只初始化一次
func initTranslator(language string) error {
	transOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			transErr = fmt.Errorf("无法获取gin的validator实例")
			return
		}

		zhT := zh.New()
		enT := en.New()
		uni := ut.New(enT, enT, zhT)

		trans, ok = uni.GetTranslator(language)
		if !ok {
			transErr = fmt.Errorf("not found translator %s", language)
			return
		}

		switch language {
		case "zh":
			transErr = zh_translation.RegisterDefaultTranslations(validate, trans)
		default:
			transErr = en_translation.RegisterDefaultTranslations(validate, trans)
		}
	})
	return transErr
}

// remove 去掉校验错误key里的结构体名前缀
func remove(errors map[string]string) map[string]string {
	result := map[string]string{}
	for key, value := range errors {
		result[key[strings.Index(key, ".")+1:]] = value
	}
	return result
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data map[string]any) *Response {
	if data == nil {
		data = map[string]any{}
	}
	return &Response{
		Code: 200,
		Msg:  msg,
		Data: data,
	}
}

// ErrResponse 错误响应，校验错误会被翻译成中文字段提示
func ErrResponse(msg string, cause error) *ErrResponseST {
	resp := &ErrResponseST{
		Code: 201,
		Msg:  msg,
		Data: map[string]any{},
		Err:  "",
	}
	if cause == nil {
		return resp
	}

	if validationErrors, ok := cause.(validator.ValidationErrors); ok {
		if err := initTranslator("zh"); err == nil {
			resp.Err = remove(validationErrors.Translate(trans))
			return resp
		}
	}
	resp.Err = cause.Error()
	return resp
}
