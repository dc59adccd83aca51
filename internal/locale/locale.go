// Package locale holds the struct validator and the English/Arabic message
// catalog used for user-facing errors.
package locale

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Message keys for errors that do not come from field validation.
const (
	MsgInvalidRequest      = "invalid_request"
	MsgValidationFailed    = "validation_failed"
	MsgUnauthorized        = "unauthorized"
	MsgInvalidToken        = "invalid_token"
	MsgInvalidCredentials  = "invalid_credentials"
	MsgAccountNotConfirmed = "account_not_confirmed"
	MsgPhoneTaken          = "phone_taken"
	MsgInvalidGuestCode    = "invalid_guest_code"
	MsgGuestReadOnly       = "guest_read_only"
	MsgGuestRevoked        = "guest_revoked"
	MsgNotFound            = "not_found"
	MsgGroupExists         = "group_exists"
	MsgLastGroup           = "last_group"
	MsgNoAnalysisData      = "no_analysis_data"
	MsgAIMissingKey        = "ai_missing_key"
	MsgAIUpstream          = "ai_upstream"
	MsgAIEmpty             = "ai_empty"
	MsgInternal            = "internal"
)

var messages = map[string]map[string]string{
	"en": {
		MsgInvalidRequest:      "Invalid request.",
		MsgValidationFailed:    "Please correct the highlighted fields.",
		MsgUnauthorized:        "Please sign in first.",
		MsgInvalidToken:        "Your session has expired, please sign in again.",
		MsgInvalidCredentials:  "Wrong phone number or password.",
		MsgAccountNotConfirmed: "The account exists but has not been activated yet.",
		MsgPhoneTaken:          "This phone number is already registered.",
		MsgInvalidGuestCode:    "The guest code is not valid.",
		MsgGuestReadOnly:       "Guest access is read-only.",
		MsgGuestRevoked:        "This guest access has been withdrawn by the owner.",
		MsgNotFound:            "The record was not found.",
		MsgGroupExists:         "A group with this name already exists.",
		MsgLastGroup:           "There must be at least one group.",
		MsgNoAnalysisData:      "There is not enough data to analyse this month.",
		MsgAIMissingKey:        "The AI service is not configured.",
		MsgAIUpstream:          "The AI service failed, please try again.",
		MsgAIEmpty:             "The AI service returned an empty answer.",
		MsgInternal:            "Something went wrong, please try again.",
	},
	"ar": {
		MsgInvalidRequest:      "الطلب غير صحيح.",
		MsgValidationFailed:    "من فضلك صحح البيانات المطلوبة.",
		MsgUnauthorized:        "من فضلك سجل دخولك الأول.",
		MsgInvalidToken:        "الجلسة انتهت، سجل دخولك تاني.",
		MsgInvalidCredentials:  "رقم الموبايل أو كلمة المرور غلط.",
		MsgAccountNotConfirmed: "الحساب اتعمل بس محتاج يتفعّل.",
		MsgPhoneTaken:          "رقم الموبايل ده متسجل قبل كده.",
		MsgInvalidGuestCode:    "كود الضيف غير صحيح.",
		MsgGuestReadOnly:       "دخول الضيف للعرض بس.",
		MsgGuestRevoked:        "صاحب الحساب لغى دخول الضيف ده.",
		MsgNotFound:            "البيان ده مش موجود.",
		MsgGroupExists:         "اسم المجموعة ده موجود قبل كده.",
		MsgLastGroup:           "لازم يكون فيه مجموعة واحدة على الأقل.",
		MsgNoAnalysisData:      "لا توجد بيانات كافية للتحليل في هذا الشهر.",
		MsgAIMissingKey:        "خدمة التحليل الذكي مش متظبطة.",
		MsgAIUpstream:          "حدث خطأ أثناء محاولة التحليل. الرجاء المحاولة مرة أخرى.",
		MsgAIEmpty:             "خدمة التحليل الذكي مرجعتش أي رد.",
		MsgInternal:            "حصل خطأ، حاول تاني.",
	},
}

// field validation texts: {0} is the field, {1} the tag parameter
var arabicTags = map[string]string{
	"required": "{0} مطلوب",
	"gt":       "{0} لازم يكون أكبر من {1}",
	"gte":      "{0} لازم يكون {1} أو أكثر",
	"lt":       "{0} لازم يكون أقل من {1}",
	"min":      "{0} لازم يكون {1} على الأقل",
	"max":      "{0} لازم ميزيدش عن {1}",
	"len":      "{0} لازم يكون طوله {1}",
	"datetime": "{0} لازم يكون تاريخ صحيح",
	"email":    "{0} لازم يكون بريد إلكتروني صحيح",
	"alphanum": "{0} لازم يكون حروف وأرقام بس",
}

var englishOverrides = map[string]string{
	"required": "{0} is required",
	"datetime": "{0} must be a date in the {1} format",
}

// Catalog bundles the validator with its translators.
type Catalog struct {
	uni      *ut.UniversalTranslator
	validate *validator.Validate
}

// New builds the validator and registers every translation.
func New() *Catalog {
	english := en.New()
	uni := ut.New(english, english, ar.New())
	validate := validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enTrans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, enTrans)
	for tag, text := range englishOverrides {
		registerTranslation(validate, enTrans, tag, text)
	}

	arTrans, _ := uni.GetTranslator("ar")
	for tag, text := range arabicTags {
		registerTranslation(validate, arTrans, tag, text)
	}

	for lang, texts := range messages {
		trans, _ := uni.GetTranslator(lang)
		for key, text := range texts {
			_ = trans.Add(key, text, true)
		}
	}

	return &Catalog{uni: uni, validate: validate}
}

// registerTranslation registers a custom translation for the specified validation tag.
func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
}

// Validator returns the shared struct validator.
func (c *Catalog) Validator() *validator.Validate {
	return c.validate
}

// Translator picks the best translator for an Accept-Language header value.
func (c *Catalog) Translator(acceptLanguage string) ut.Translator {
	var langs []string
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		langs = append(langs, strings.ToLower(strings.SplitN(tag, "-", 2)[0]))
	}
	trans, _ := c.uni.FindTranslator(langs...)
	return trans
}

// Message translates a message key, falling back to the key itself.
func (c *Catalog) Message(trans ut.Translator, key string) string {
	s, err := trans.T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}

// Fields translates validation failures keyed by JSON field name.
func (c *Catalog) Fields(trans ut.Translator, errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Translate(trans)
	}
	return out
}
