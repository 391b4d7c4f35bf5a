package worker

import (
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/sirupsen/logrus"
)

// Job is a unit of work run by a Pool. Tag identifies the job in logs and crash reports.
type Job struct {
	Tag string
	Fn  func() error
}

type task struct {
	job  Job
	err  *error
	done *sync.WaitGroup
}

// Pool runs jobs on a fixed set of goroutines. A job that panics does not take its worker down: the
// panic is reported to sentry and returned as the job's error.
type Pool struct {
	queue chan task
	log   logrus.FieldLogger

	workers   sync.WaitGroup
	closeOnce sync.Once
}

// NewPool starts a Pool with the amount of workers given. If workers is not positive, one worker per CPU
// is started.
func NewPool(workers int, log logrus.FieldLogger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	p := &Pool{
		queue: make(chan task, workers),
		log:   log,
	}
	p.workers.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for t := range p.queue {
		*t.err = p.run(t.job)
		t.done.Done()
	}
}

func (p *Pool) run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("job %s panic: %v", job.Tag, r)
			err = oerror.New("job %s crashed: %v", job.Tag, r)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("job", job.Tag)
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()
	return job.Fn()
}

// Run runs every job given on the pool and blocks until all of them are done. The error of each job
// is returned at the index of the job.
func (p *Pool) Run(jobs []Job) []error {
	errs := make([]error, len(jobs))
	var done sync.WaitGroup
	done.Add(len(jobs))
	for i := range jobs {
		p.queue <- task{job: jobs[i], err: &errs[i], done: &done}
	}
	done.Wait()
	return errs
}

// Close stops the workers once every queued job has finished. Run must not be called after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	p.workers.Wait()
}
