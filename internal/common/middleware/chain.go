package middleware

import "github.com/gin-gonic/gin"

// Chain returns guards followed by handler in a fresh slice.
func Chain(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}
