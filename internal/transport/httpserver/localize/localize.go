// Package localize picks the response language from Accept-Language and
// translates the fixed API messages. English strings are the catalog keys.
package localize

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.English,
	language.Japanese,
}

var matcher = language.NewMatcher(supported)

const (
	MissingToken       = "missing token, please log in"
	ExpiredToken       = "token expired, please log in again"
	InvalidToken       = "invalid token, please log in again"
	InvalidJSON        = "invalid json body"
	InvalidInput       = "invalid input"
	NotFound           = "resource not found"
	Forbidden          = "you do not have permission to do this"
	PasscodeRequired   = "passcode required"
	PasscodeMismatch   = "incorrect passcode"
	PasscodeNotSet     = "set a parent passcode first"
	InsufficientPoints = "insufficient points"
	InvalidOperation   = "invalid operation"
	TooManyAttempts    = "too many passcode attempts, try again later"
	TooManyRequests    = "too many requests, slow down"
	InternalError      = "internal server error"
	ChoreDeleted       = "Chore deleted successfully"
	ChoreCompleted     = "Chore completed"
	RewardDeleted      = "Reward deleted successfully"
	RewardClaimed      = "Reward claimed successfully"
)

var japanese = map[string]string{
	MissingToken:       "トークンがありません。ログインしてください。",
	ExpiredToken:       "トークンの有効期限が切れています。もう一度ログインしてください。",
	InvalidToken:       "無効なトークンです。もう一度ログインしてください。",
	InvalidJSON:        "リクエストの形式が正しくありません。",
	InvalidInput:       "入力値が無効です。",
	NotFound:           "リソースが見つかりません。",
	Forbidden:          "このリソースにアクセスする権限がありません。",
	PasscodeRequired:   "パスコードを入力してください。",
	PasscodeMismatch:   "パスコードが正しくありません。",
	PasscodeNotSet:     "先に親用パスコードを設定してください。",
	InsufficientPoints: "ポイントが不足しています。",
	InvalidOperation:   "無効な操作です。",
	TooManyAttempts:    "パスコードの試行回数が多すぎます。しばらくしてから再試行してください。",
	TooManyRequests:    "リクエストが多すぎます。しばらくしてから再試行してください。",
	InternalError:      "サーバーエラーが発生しました。",
	ChoreDeleted:       "お手伝いを削除しました。",
	ChoreCompleted:     "お手伝いを完了しました。",
	RewardDeleted:      "ごほうびを削除しました。",
	RewardClaimed:      "ごほうびを交換しました。",

	"name is required":                       "名前は必須です。",
	"points is required":                     "ポイントは必須です。",
	"points must be a positive integer":      "ポイントは正の整数で指定してください。",
	"points must not exceed 2147483647":      "ポイントは2147483647以下で指定してください。",
	"passcode must be at least 4 characters": "パスコードは4文字以上で指定してください。",
	"invalid user type":                      "ユーザー種別が無効です。",
	"idToken is required":                    "idToken は必須です。",
	"invalid date, use YYYY-MM-DD":           "日付は YYYY-MM-DD 形式で指定してください。",
	"endDate must not be before startDate":   "endDate は startDate 以降の日付を指定してください。",
}

func init() {
	for key, text := range japanese {
		_ = message.SetString(language.Japanese, key, text)
	}
}

// Tag returns the supported language that best matches the request.
func Tag(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// Text translates key for the request. Unknown keys come back unchanged.
func Text(r *http.Request, key string) string {
	return message.NewPrinter(Tag(r)).Sprintf(key)
}
