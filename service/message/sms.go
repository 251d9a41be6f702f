package message

import (
	"fmt"
	"log"

	"epe_gacha/config"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v5/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

// Notifier 大奖短信通知器
// 抽中传说级奖品或集齐碎片时给门店工作人员手机发一条短信，
// 让他们提前准备实物奖品；未配置凭证时整个功能关闭
type Notifier struct {
	cfg config.SMSConfig
}

// NewNotifier 创建通知器，配置不完整时返回nil（功能关闭）
func NewNotifier(cfg config.SMSConfig) *Notifier {
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.StaffPhone == "" {
		log.Println("短信配置不完整，不启用大奖通知")
		return nil
	}
	return &Notifier{cfg: cfg}
}

// createClient 创建短信客户端
func (n *Notifier) createClient() (*dysmsapi20170525.Client, error) {
	clientConfig := &openapi.Config{
		AccessKeyId:     tea.String(n.cfg.AccessKeyID),
		AccessKeySecret: tea.String(n.cfg.AccessKeySecret),
	}
	// Endpoint 请参考 https://api.aliyun.com/product/Dysmsapi
	clientConfig.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	return dysmsapi20170525.NewClient(clientConfig)
}

// NotifyBigWin 给工作人员发大奖提醒
func (n *Notifier) NotifyBigWin(userName, prizeName string) error {
	client, err := n.createClient()
	if err != nil {
		return fmt.Errorf("创建短信客户端失败: %v", err)
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		PhoneNumbers:  tea.String(n.cfg.StaffPhone),
		SignName:      tea.String(n.cfg.SignName),
		TemplateCode:  tea.String(n.cfg.TemplateCode),
		TemplateParam: tea.String(fmt.Sprintf("{\"name\":\"%s\",\"prize\":\"%s\"}", userName, prizeName)),
	}
	runtime := &util.RuntimeOptions{}

	resp, err := client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		var sdkError = &tea.SDKError{}
		if _t, ok := err.(*tea.SDKError); ok {
			sdkError = _t
		} else {
			sdkError.Message = tea.String(err.Error())
		}
		return fmt.Errorf("发送短信失败: %s", tea.StringValue(sdkError.Message))
	}

	log.Printf("大奖通知已发送，学员[%s]奖品[%s]，响应: %s", userName, prizeName, tea.StringValue(util.ToJSONString(resp)))
	return nil
}
