package chat

// Reply templates.
const (
	RecommendReply    = "YouTubeでおすすめの動画を見つけるには：\n\n1. トレンドタブで人気動画をチェック\n2. 興味のあるチャンネルを登録\n3. 関連動画から新しいコンテンツを発見\n4. 検索で具体的なキーワードを使用\n\n透明YouTube-unblockerを使えば、広告なしでプライベートに動画を視聴できます！"
	EditingReply      = "YouTube動画編集のコツ：\n\n🎬 初心者向けソフト：\n• DaVinci Resolve（無料）\n• iMovie（Mac）\n• Filmora（有料だが使いやすい）\n\n📝 編集のポイント：\n• 魅力的なサムネイル作成\n• 最初の15秒で視聴者を惹きつける\n• BGMと効果音を効果的に使用\n• テンポよくカット編集\n• 適切な字幕追加"
	MonetizationReply = "YouTube収益化について：\n\n💰 必要条件：\n• チャンネル登録者1,000人以上\n• 年間再生時間4,000時間以上\n• AdSenseアカウント連携\n\n📈 収益向上のコツ：\n• 定期的な動画投稿\n• SEOを意識したタイトル・説明文\n• 視聴者とのコミュニケーション\n• トレンドに合わせたコンテンツ作成"
	YouTubeReply      = "YouTubeに関するご質問ですね！透明YouTube-unblockerでは、プライバシーを重視した動画視聴が可能です。広告なし、トラッキングなしで安全にYouTubeコンテンツをお楽しみください。具体的な質問があれば、もう少し詳しく教えてください。"
	LearningReply     = "プログラミング学習のおすすめ方法：\n\n🌟 初心者向けステップ：\n1. HTMLとCSSでWebページ作成\n2. JavaScriptで動的な機能追加\n3. Pythonでプログラミング基礎学習\n4. フレームワーク（React、Vue.js等）の習得\n\n📚 学習リソース：\n• Progate、ドットインストール\n• YouTube教材動画\n• 書籍とオンラインコース\n• 実際のプロジェクト作成"
	ProgrammingReply  = "プログラミングについてお答えします！透明YouTube-unblockerも最新のWeb技術（React、TypeScript、Express.js）で構築されています。具体的にどの分野について知りたいでしょうか？"
	AIReply           = "AI・人工知能について：\n\n🤖 現在のAI技術：\n• ChatGPT、Claude等の対話AI\n• 画像生成AI（DALL-E、Midjourney）\n• 音声認識・合成技術\n• 自動運転技術\n\n🔮 将来の展望：\n• より自然な人間とAIの協働\n• 専門分野でのAI活用拡大\n• 倫理的なAI開発の重要性\n• 教育・医療分野での革新"
	GreetingReply     = "こんにちは！透明YouTube-unblockerのAIアシスタントです。\n\n私ができること：\n🎥 YouTubeに関する質問\n💻 プログラミングの相談\n🔍 技術的な疑問の解決\n📚 学習方法のアドバイス\n\n何でもお気軽にお聞きください！"
	ThanksReply       = "どういたしまして！お役に立てて嬉しいです。\n\n他にも何かご質問があれば、いつでもお気軽にお声かけください。透明YouTube-unblockerで快適な動画視聴をお楽しみください！"
	WeatherReply      = "申し訳ありませんが、リアルタイムの天気情報は提供できません。\n\n天気情報を確認するには：\n🌤️ Yahoo天気、ウェザーニュース\n📱 天気予報アプリの利用\n🔍 「天気 [地域名]」で検索\n\n正確な情報は公式な天気予報サービスをご利用ください。"
	NewsReply         = "最新のニュースや情報については、信頼できるニュースサイトをご確認ください：\n\n📰 おすすめニュースソース：\n• NHKニュース\n• 朝日新聞、読売新聞\n• ITmedia、TechCrunch（技術系）\n• Yahoo!ニュース\n\n透明YouTube-unblockerでは、プライバシーを保護しながらニュース系YouTubeチャンネルも視聴できます！"
	HelpReply         = "透明YouTube-unblockerの使い方：\n\n📝 基本操作：\n1. YouTube URLを入力フィールドに貼り付け\n2. 「動画を視聴」ボタンをクリック\n3. プライベートで広告なしの動画再生開始\n\n🔒 プライバシー機能：\n• youtube-nocookie.com経由で安全視聴\n• 追跡なし、履歴なし\n• 広告ブロック機能\n\n💬 AI機能：\n• チャットページで質問可能\n• YouTube関連の相談\n• 技術的なサポート"
	QuestionReply     = "ご質問ありがとうございます！\n\n私がお答えできる分野：\n🎥 YouTube・動画関連\n💻 プログラミング・技術\n🔧 透明YouTube-unblockerの使い方\n📚 学習方法・リソース\n\nより具体的な質問をしていただければ、詳しくお答えできます。どの分野について知りたいでしょうか？"
	DefaultReply      = "こんにちは！透明YouTube-unblockerのAIアシスタントです。\n\nお手伝いできることがあれば、お気軽にお聞きください。YouTube関連のご質問、プログラミングの相談、アプリの使い方など、何でも対応いたします！\n\n例えば：\n「YouTubeでおすすめの動画は？」\n「プログラミングの学習方法は？」\n「このアプリの使い方を教えて」\n\nなど、お気軽にどうぞ。"
)
