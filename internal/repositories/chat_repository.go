package repositories

import (
	"errors"
	"time"

	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	"github.com/Amala4/Chat-App/internal/utils"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
	// find and create are the two halves of conversation resolution,
	// held as fields so tests can stand in for the database.
	find   func(userA, userB uint) (*models.Conversation, error)
	create func(userA, userB uint) (*models.Conversation, error)
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	chr := &ChatRepository{
		db: db,
	}
	chr.find = chr.FindConversationBetween
	chr.create = chr.createConversation
	return chr
}

// ResolveOrCreateConversation returns the single conversation for the
// unordered pair, creating it on first contact. Two racing creates are
// settled by the unique index on pair_key: the loser re-reads the
// winner's row instead of surfacing the conflict.
func (chr *ChatRepository) ResolveOrCreateConversation(userA, userB uint) (*models.Conversation, []error) {
	var errList []error

	existing, err := chr.find(userA, userB)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrConversationNotFound) {
		errList = append(errList, err)
		return nil, errList
	}

	created, createErr := chr.create(userA, userB)
	if createErr == nil {
		return created, nil
	}
	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		// Lost the create race, the committed winner is the conversation.
		winner, findErr := chr.find(userA, userB)
		if findErr != nil {
			errList = append(errList, findErr)
			return nil, errList
		}
		return winner, nil
	}
	errList = append(errList, createErr)
	return nil, errList
}

// createConversation inserts the conversation plus both membership rows
// in one transaction. A concurrent insert for the same pair surfaces as
// gorm.ErrDuplicatedKey via the pair_key unique index, which the
// resolver treats as losing the race rather than as a failure.
func (chr *ChatRepository) createConversation(userA, userB uint) (*models.Conversation, error) {
	conversation := models.Conversation{
		PairKey: utils.PairKey(userA, userB),
	}

	txErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			// return any error will rollback
			return err
		}

		for _, userId := range []uint{userA, userB} {
			err := tx.Create(&models.ConversationMember{
				ConversationID: conversation.ID,
				UserID:         userId,
			}).Error

			if err != nil {
				// return any error will rollback
				return err
			}
		}

		// return nil will commit the whole transaction
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	created, findErrs := chr.preloadConversation(conversation.ID)
	if len(findErrs) > 0 {
		return nil, findErrs[0]
	}
	return created, nil
}

func (chr *ChatRepository) FindConversationBetween(userA, userB uint) (*models.Conversation, error) {
	var conversation models.Conversation
	result := chr.db.
		Preload("Members").
		Where("pair_key = ?", utils.PairKey(userA, userB)).
		First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrConversationNotFound
		}
		return nil, result.Error
	}
	return &conversation, nil
}

func (chr *ChatRepository) preloadConversation(conversationID uint) (*models.Conversation, []error) {
	var errList []error
	var conversation models.Conversation
	result := chr.db.
		Preload("Members").
		Where("id = ?", conversationID).
		First(&conversation)
	if result.Error != nil {
		errList = append(errList, result.Error)
		return nil, errList
	}
	return &conversation, nil
}

func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, []error) {
	var errList []error
	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if message.ConversationID != nil {
			if err := tx.Model(&models.Conversation{}).
				Where("id = ?", *message.ConversationID).
				Update("updated_at", time.Now()).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if transactionErr != nil {
		errList = append(errList, transactionErr)
		return nil, errList
	}
	return message, nil
}

// ListMessagesBetween returns every message flowing in either direction
// between exactly the two users, ascending by timestamp with the row id
// breaking ties so the order matches insertion order. A non-nil since is
// exclusive, which is what the feed watermark needs to never redeliver.
func (chr *ChatRepository) ListMessagesBetween(userA, userB uint, since *time.Time) ([]models.Message, error) {
	var messages []models.Message
	pair := []uint{userA, userB}
	query := chr.db.
		Where("sender_id IN ? AND receiver_id IN ?", pair, pair)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}
	if err := query.
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (chr *ChatRepository) GetUserConversations(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := chr.db.
		Preload("Members").
		Where("id IN (SELECT conversation_id FROM conversation_members WHERE user_id = ?)", userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (chr *ChatRepository) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	var message models.Message
	result := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&message)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEmptyConversation
		}
		return nil, result.Error
	}
	return &message, nil
}

func (chr *ChatRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := chr.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
