package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/giftgeek/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 1m", func() {
		a.SchedPaymentPollTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedLowStockScanTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedTrimMovementLogTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	// Collect CPU usage
	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	// Collect memory usage
	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	// Collect process CPU usage
	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("storefront_cpuuse", int64(cpuuse*100)) // Store as percentage * 100
	}

	// Collect process memory usage
	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("storefront_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedPaymentPollTask refreshes mirrored transactions still pending at the
// gateway.
func (a *Application) SchedPaymentPollTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	workers := int(a.GetSettingsInt64Value("scheduler", "max_workers"))
	a.paymentSvc.PollPending(context.Background(), workers)
}

// SchedLowStockScanTask pushes a toast and mails the operator for every
// product at or below its threshold.
func (a *Application) SchedLowStockScanTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	low, err := a.ledger.LowStock(context.Background())
	if err != nil {
		zap.S().Errorf("low stock scan error %s", err.Error())
		return
	}
	if len(low) == 0 {
		return
	}

	for _, rec := range low {
		a.toasts.Warning("Low stock",
			fmt.Sprintf("Product %d has %d left", rec.ProductID, rec.Available()))
	}
	if err := a.mailer.SendLowStock(low); err != nil {
		zap.S().Errorf("low stock mail error %s", err.Error())
	}
	metrics.SetGauge("inventory_lowstock", int64(len(low)))
}

// SchedTrimMovementLogTask enforces the movement log retention window.
func (a *Application) SchedTrimMovementLogTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := a.ledger.TrimLog(context.Background()); err != nil {
		zap.S().Errorf("movement log trim error %s", err.Error())
	}
}
