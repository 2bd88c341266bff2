package models

import "github.com/corexathletics/storefront/services/assistant-service/providers"

const MaxMessages = 40

type ChatRequest struct {
	Messages []providers.Message `json:"messages" binding:"required"`
}

type ChatReply struct {
	Message string `json:"message"`
}

type SamplesResponse struct {
	Questions []string `json:"questions"`
}
