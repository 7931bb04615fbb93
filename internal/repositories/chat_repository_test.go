package repositories

import (
	"errors"
	"testing"

	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	"github.com/Amala4/Chat-App/internal/utils"
	"gorm.io/gorm"
)

func resolverUnderTest(
	find func(userA, userB uint) (*models.Conversation, error),
	create func(userA, userB uint) (*models.Conversation, error),
) *ChatRepository {
	chr := NewChatRepository(nil)
	chr.find = find
	chr.create = create
	return chr
}

func TestResolveOrCreateReturnsExistingConversation(t *testing.T) {
	existing := &models.Conversation{
		Model:   gorm.Model{ID: 7},
		PairKey: utils.PairKey(1, 2),
	}
	chr := resolverUnderTest(
		func(userA, userB uint) (*models.Conversation, error) {
			return existing, nil
		},
		func(userA, userB uint) (*models.Conversation, error) {
			t.Fatalf("create must not run when the conversation already exists")
			return nil, nil
		},
	)

	conversation, errList := chr.ResolveOrCreateConversation(1, 2)
	if len(errList) > 0 {
		t.Fatalf("unexpected errors: %v", errList)
	}
	if conversation.ID != existing.ID {
		t.Fatalf("expected conversation %d, got %d", existing.ID, conversation.ID)
	}
}

func TestResolveOrCreateRecoversFromDuplicateKey(t *testing.T) {
	winner := &models.Conversation{
		Model:   gorm.Model{ID: 11},
		PairKey: utils.PairKey(1, 2),
	}
	findCalls := 0
	createCalls := 0
	chr := resolverUnderTest(
		func(userA, userB uint) (*models.Conversation, error) {
			findCalls++
			if findCalls == 1 {
				// Not there yet when this caller looked.
				return nil, errs.ErrConversationNotFound
			}
			// Committed by the other caller in between.
			return winner, nil
		},
		func(userA, userB uint) (*models.Conversation, error) {
			createCalls++
			return nil, gorm.ErrDuplicatedKey
		},
	)

	conversation, errList := chr.ResolveOrCreateConversation(1, 2)
	if len(errList) > 0 {
		t.Fatalf("losing the create race must not surface an error, got: %v", errList)
	}
	if conversation == nil || conversation.ID != winner.ID {
		t.Fatalf("expected the winner's conversation %d, got %+v", winner.ID, conversation)
	}
	if createCalls != 1 {
		t.Fatalf("expected a single create attempt, got %d", createCalls)
	}
	if findCalls != 2 {
		t.Fatalf("expected a re-read after the duplicate, got %d lookups", findCalls)
	}
}

func TestResolveOrCreateSurfacesUnrelatedCreateError(t *testing.T) {
	createErr := errors.New("connection reset")
	chr := resolverUnderTest(
		func(userA, userB uint) (*models.Conversation, error) {
			return nil, errs.ErrConversationNotFound
		},
		func(userA, userB uint) (*models.Conversation, error) {
			return nil, createErr
		},
	)

	conversation, errList := chr.ResolveOrCreateConversation(1, 2)
	if conversation != nil {
		t.Fatalf("expected no conversation, got %+v", conversation)
	}
	if len(errList) != 1 || !errors.Is(errList[0], createErr) {
		t.Fatalf("expected the create error to surface, got: %v", errList)
	}
}

func TestResolveOrCreateSurfacesReReadFailure(t *testing.T) {
	findCalls := 0
	reReadErr := errors.New("connection reset")
	chr := resolverUnderTest(
		func(userA, userB uint) (*models.Conversation, error) {
			findCalls++
			if findCalls == 1 {
				return nil, errs.ErrConversationNotFound
			}
			return nil, reReadErr
		},
		func(userA, userB uint) (*models.Conversation, error) {
			return nil, gorm.ErrDuplicatedKey
		},
	)

	conversation, errList := chr.ResolveOrCreateConversation(1, 2)
	if conversation != nil {
		t.Fatalf("expected no conversation, got %+v", conversation)
	}
	if len(errList) != 1 || !errors.Is(errList[0], reReadErr) {
		t.Fatalf("expected the re-read error to surface, got: %v", errList)
	}
}
