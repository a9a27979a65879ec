// Package errors 跨层共享的哨兵错误。
//
// 业务错误码区段约定：
//
//	100xx 通用（参数、认证头、权限、限流、请求体）
//	11xxx 认证  12xxx 排班  13xxx 工时记录
//	14xxx 审批  15xxx 导出  16xxx 用户管理
//	50000 服务器内部错误
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
