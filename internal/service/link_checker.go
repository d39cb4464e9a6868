package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"edumall_v1_202608/pkg/utils"
)

// ==================== 外链探测 ====================

// ErrLinkUnreachable 外链不可达
var ErrLinkUnreachable = errors.New("外链不可达，请检查地址")

// LinkChecker 外链探测接口
// 商品图片 / 课时视频 / 讲座直播间地址保存前做一次可达性检查
// 注入 nil 表示跳过探测（测试、离线开发）
type LinkChecker interface {
	Check(ctx context.Context, url string) error
}

// RestyLinkChecker 基于 Resty 的实现
type RestyLinkChecker struct {
	client *resty.Client
}

// NewRestyLinkChecker 创建探测器
func NewRestyLinkChecker() *RestyLinkChecker {
	return &RestyLinkChecker{client: utils.NewHTTPClient()}
}

// Check 发 HEAD 请求探测
// 4xx/5xx 或网络错误都视为不可达；资源内容不校验
func (c *RestyLinkChecker) Check(ctx context.Context, url string) error {
	resp, err := c.client.R().SetContext(ctx).Head(url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("外链探测失败")
		return ErrLinkUnreachable
	}
	if resp.StatusCode() >= 400 {
		log.Warn().Int("status", resp.StatusCode()).Str("url", url).Msg("外链返回错误状态")
		return fmt.Errorf("%w: status %d", ErrLinkUnreachable, resp.StatusCode())
	}
	return nil
}

// checkLinks 批量探测，checker 为 nil 时直接放行
func checkLinks(ctx context.Context, checker LinkChecker, urls ...string) error {
	if checker == nil {
		return nil
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := checker.Check(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
