package company

import "github.com/sirupsen/logrus"

// log 企业模块的日志记录器
var log = logrus.WithField("module", "company")
