package constant

// User facing error messages returned in JSON bodies.
const (
	MsgInvalidVideoID   = "無効な動画IDです"
	MsgVideoNotFound    = "動画が見つかりません"
	MsgVideoFetchFailed = "動画データの取得に失敗しました"
	MsgMaybeBlocked     = "ブロックされている可能性があります"
	MsgAccessible       = "アクセス可能です"
	MsgMessageRequired  = "メッセージが必要です"
	MsgMessageTooLong   = "メッセージが長すぎます"
	MsgChatFailed       = "AIとの通信に失敗しました"
	MsgHistoryFailed    = "チャット履歴の取得に失敗しました"
	MsgSessionsFailed   = "チャットセッションの取得に失敗しました"
	MsgProxyFailed      = "プロキシ経由の取得に失敗しました"
	MsgUnknownTarget    = "プロキシ先が見つかりません"
	MsgInvalidURL       = "有効なYouTube URLを入力してください"
	MsgInvalidParams    = "無効なパラメータです"
	MsgThumbnailMissing = "サムネイルが見つかりません"
	MsgQueryRequired    = "検索キーワードが必要です"
	MsgSearchFailed     = "検索に失敗しました"
	MsgInternal         = "サーバー内部エラーが発生しました"
)

// ProxyErrorCode tags error bodies produced by the reverse proxy.
const ProxyErrorCode = "PROXY_ERROR"
