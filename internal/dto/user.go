package dto

// ── 用户管理模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=employee manager admin"`
}
