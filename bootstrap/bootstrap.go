package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/cipherdeck/cipherdeck/anchor"
	"github.com/cipherdeck/cipherdeck/api"
	"github.com/cipherdeck/cipherdeck/audit"
	"github.com/cipherdeck/cipherdeck/configuration"
	"github.com/cipherdeck/cipherdeck/lens"
	"github.com/cipherdeck/cipherdeck/store"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	trail, err := audit.Open(c.AuditPath)
	if err != nil {
		// The trail is best effort, the service still serves without it.
		log.Println("WARNING: open vault trail:", err.Error())
		trail = nil
	}

	st := store.NewStore(&store.Config{
		Dir:      c.Dir,
		VaultDir: c.VaultDir,
	}, trail)

	anc := anchor.Load(c.AnchorPath)

	b := api.Build(st, anc, lens.Placeholder{}, VERSION, c.ApiKey)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		addr := nextAddr(c.HttpAddr)
		log.Printf("port busy (%s), moving to %s", err.Error(), addr)
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			log.Println("ERROR:", err.Error())
			os.Exit(-1)
		}
	}
	log.Println("listening on", ln.Addr().String())

	stop = func() {
		st.Stop()
		s.Shutdown(context.Background())
		if trail != nil {
			trail.Close()
		}
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			fmt.Println("Signal received", sig.String())
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := st.Start()
			if err != nil {
				fmt.Println(err.Error())
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil {
				fmt.Println(err.Error())
			}
		}()

		wg.Wait()
	}

	return
}

// nextAddr bumps the port by one, the original's fallback when the
// configured port is already bound.
func nextAddr(addr string) string {

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return addr
	}

	return net.JoinHostPort(host, strconv.Itoa(n+1))
}
