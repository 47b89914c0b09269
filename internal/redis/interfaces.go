package redis

import "rideshare/internal/service"

var (
	_ service.SignupLocker = (*LockStore)(nil)
	_ service.UserCache    = (*CacheStore)(nil)
)
