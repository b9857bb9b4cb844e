// Package usecase はmessagingフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrConversationNotFound は会話が存在しない場合に返されます。
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNotParticipant は参加していない会話を操作しようとした場合に返されます。
	ErrNotParticipant = errors.New("user is not a participant of conversation")

	// ErrNoParticipants は参加者なしで会話を作成しようとした場合に返されます。
	ErrNoParticipants = errors.New("conversation requires at least one other participant")

	// ErrGroupTitleRequired はタイトルなしでグループ会話を作成しようとした場合に返されます。
	ErrGroupTitleRequired = errors.New("group conversation requires a title")
)
