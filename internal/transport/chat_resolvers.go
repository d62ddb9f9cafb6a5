package transport

import (
	"fmt"
	"strings"

	"crm-platform/internal/domain"
	"crm-platform/internal/service"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

func (r *Resolver) listUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.chat.ListUsers(p.Context)
	if err != nil {
		return nil, r.resolverError("users", err)
	}
	return users, nil
}

func (r *Resolver) listConversations(p graphql.ResolveParams) (interface{}, error) {
	conversations, err := r.chat.ListConversations(p.Context)
	if err != nil {
		return nil, r.resolverError("conversations", err)
	}
	return conversations, nil
}

func (r *Resolver) listMessages(p graphql.ResolveParams) (interface{}, error) {
	conversationID, err := parseID(p.Args["conversationId"])
	if err != nil {
		return nil, r.resolverError("messages", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid conversation ID: %v", p.Args["conversationId"]),
		})
	}

	messages, err := r.chat.ListMessages(p.Context, conversationID)
	if err != nil {
		return nil, r.resolverError("messages", err)
	}
	return messages, nil
}

func (r *Resolver) createChatUser(p graphql.ResolveParams) (interface{}, error) {
	raw, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, r.resolverError("createChatUser", fmt.Errorf("malformed input argument"))
	}

	input := service.UserInput{}
	if v, ok := raw["email"].(string); ok {
		input.Email = v
	}
	if v, ok := raw["firstName"].(string); ok {
		input.FirstName = v
	}
	if v, ok := raw["lastName"].(string); ok {
		input.LastName = v
	}
	if v, ok := raw["phoneNumber"].(string); ok && v != "" {
		input.PhoneNumber = &v
	}
	if v, ok := raw["role"].(domain.Role); ok {
		input.Role = &v
	}

	user, err := r.chat.CreateUser(p.Context, input)
	if err != nil {
		return nil, r.resolverError("createChatUser", err)
	}

	r.logger.Info("Chat user created", zap.String("user_id", user.ID.String()))
	return map[string]interface{}{
		"user":    user,
		"message": "User created successfully",
	}, nil
}

func (r *Resolver) createConversation(p graphql.ResolveParams) (interface{}, error) {
	rawIDs, _ := p.Args["participantIds"].([]interface{})
	participantIDs := make([]uuid.UUID, 0, len(rawIDs))
	malformed := []string{}
	for _, raw := range rawIDs {
		id, err := parseID(raw)
		if err != nil {
			malformed = append(malformed, fmt.Sprintf("%v", raw))
			continue
		}
		participantIDs = append(participantIDs, id)
	}
	if len(malformed) > 0 {
		return nil, r.resolverError("createConversation", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid participant IDs: %s", strings.Join(malformed, ", ")),
		})
	}

	conversation, err := r.chat.CreateConversation(p.Context, participantIDs)
	if err != nil {
		return nil, r.resolverError("createConversation", err)
	}

	r.logger.Info("Conversation created",
		zap.String("conversation_id", conversation.ID.String()),
		zap.Int("participants", len(conversation.Participants)),
	)
	return map[string]interface{}{
		"conversation": conversation,
		"message":      "Conversation created successfully",
	}, nil
}

func (r *Resolver) sendMessage(p graphql.ResolveParams) (interface{}, error) {
	conversationID, err := parseID(p.Args["conversationId"])
	if err != nil {
		return nil, r.resolverError("sendMessage", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid conversation ID: %v", p.Args["conversationId"]),
		})
	}

	senderID, err := parseID(p.Args["senderId"])
	if err != nil {
		return nil, r.resolverError("sendMessage", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid sender ID: %v", p.Args["senderId"]),
		})
	}

	body, _ := p.Args["body"].(string)

	message, err := r.chat.SendMessage(p.Context, conversationID, senderID, body)
	if err != nil {
		return nil, r.resolverError("sendMessage", err)
	}

	r.logger.Info("Message sent",
		zap.String("message_id", message.ID.String()),
		zap.String("conversation_id", conversationID.String()),
	)
	return map[string]interface{}{
		"message": message,
	}, nil
}

func (r *Resolver) resolveMessageSender(p graphql.ResolveParams) (interface{}, error) {
	message, ok := p.Source.(*domain.Message)
	if !ok {
		return nil, nil
	}
	user, err := r.chat.GetUser(p.Context, message.SenderID)
	if err != nil {
		return nil, r.resolverError("message.sender", err)
	}
	return user, nil
}

func (r *Resolver) resolveConversationParticipants(p graphql.ResolveParams) (interface{}, error) {
	conversation, ok := p.Source.(*domain.Conversation)
	if !ok {
		return nil, nil
	}
	if conversation.Participants != nil {
		return conversation.Participants, nil
	}
	users, err := r.chat.ListParticipants(p.Context, conversation.ID)
	if err != nil {
		return nil, r.resolverError("conversation.participants", err)
	}
	return users, nil
}

func (r *Resolver) resolveConversationMessages(p graphql.ResolveParams) (interface{}, error) {
	conversation, ok := p.Source.(*domain.Conversation)
	if !ok {
		return nil, nil
	}
	messages, err := r.chat.ListMessages(p.Context, conversation.ID)
	if err != nil {
		return nil, r.resolverError("conversation.messages", err)
	}
	return messages, nil
}
