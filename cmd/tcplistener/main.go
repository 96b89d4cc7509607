// tcplistener prints every request it receives and answers 404. It is
// a debugging aid for the request parser.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"

	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Println("listen error:", err)
		return
	}
	defer listener.Close()
	fmt.Println("Listening on", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	req, err := request.RequestFromReader(reader)
	if err != nil {
		fmt.Println("parse error:", err)
	} else {
		fmt.Println("Request Line")
		fmt.Printf("Method: %s\n", req.Method)
		fmt.Printf("Target: %s\n", req.Target)
		fmt.Printf("Segments: %q\n", req.Segments)
		fmt.Println("Headers")
		req.Headers.Each(func(key, value string) {
			fmt.Printf("%s: %s\n", key, value)
		})
		if n, ok := req.ContentLength(); ok {
			fmt.Printf("Body: %d bytes declared, %d buffered\n", n, reader.Buffered())
		}
	}

	w := response.NewWriter(conn)
	if err := w.NotFound(); err == nil {
		w.Flush()
	}
}
