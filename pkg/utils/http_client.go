package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewHTTPClient 创建一个配置好超时和重试的 Resty 客户端
// 它是全系统统一的出站请求入口（目前只有外链探测在用）
func NewHTTPClient() *resty.Client {
	client := resty.New().
		SetTimeout(10*time.Second).               // 外链探测给 10s 足够
		SetRetryCount(2).                         // 网络波动重试两次
		SetHeader("User-Agent", "EduMall-Go/1.0") // 标准 UA

	return client
}
