// Package chat implements the assistant behind /api/chat.
//
// It is not intelligent: Respond picks a fixed Japanese template by looking for
// keywords in the lower-cased message. Rules are evaluated in order and the
// first match wins.
package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// TitleLength is the number of characters of the first message kept as a session title.
const TitleLength = 50

type rule struct {
	keywords []string
	reply    string
	// nested rules are checked first, reply is the fallback when none matches.
	nested []rule
}

func (r rule) matches(message string) bool {
	return lo.SomeBy(r.keywords, func(k string) bool {
		return strings.Contains(message, k)
	})
}

var rules = []rule{
	{
		keywords: []string{"youtube", "ユーチューブ", "動画"},
		reply:    YouTubeReply,
		nested: []rule{
			{keywords: []string{"おすすめ", "人気"}, reply: RecommendReply},
			{keywords: []string{"編集", "作り方"}, reply: EditingReply},
			{keywords: []string{"収益", "稼ぐ"}, reply: MonetizationReply},
		},
	},
	{
		keywords: []string{"プログラミング", "コード", "開発"},
		reply:    ProgrammingReply,
		nested: []rule{
			{keywords: []string{"学習", "勉強", "始め"}, reply: LearningReply},
		},
	},
	{keywords: []string{"ai", "人工知能", "機械学習"}, reply: AIReply},
	{keywords: []string{"こんにちは", "はじめまして", "hello"}, reply: GreetingReply},
	{keywords: []string{"ありがとう", "感謝"}, reply: ThanksReply},
	{keywords: []string{"天気", "weather"}, reply: WeatherReply},
	{keywords: []string{"ニュース", "最新", "今日"}, reply: NewsReply},
	{keywords: []string{"使い方", "ヘルプ", "help"}, reply: HelpReply},
	{keywords: []string{"?", "？", "教えて", "について"}, reply: QuestionReply},
}

func dispatch(message string, rules []rule) (string, bool) {
	for _, r := range rules {
		if !r.matches(message) {
			continue
		}
		if reply, ok := dispatch(message, r.nested); ok {
			return reply, true
		}
		return r.reply, true
	}
	return "", false
}

// Respond returns the canned reply for message. It is pure and deterministic.
func Respond(message string) string {
	if reply, ok := dispatch(strings.ToLower(message), rules); ok {
		return reply
	}
	return DefaultReply
}

// Title derives a session title from the first message of a session.
func Title(message string) string {
	if utf8.RuneCountInString(message) <= TitleLength {
		return message
	}
	return string([]rune(message)[:TitleLength]) + "..."
}
