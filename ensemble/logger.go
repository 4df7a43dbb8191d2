package ensemble

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "ensemble")
